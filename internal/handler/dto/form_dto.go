package dto

import (
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
)

// OptionResponse представляет вариант ответа в формате для клиента.
// Флаг правильности наружу не отдается.
type OptionResponse struct {
	ID          uint   `json:"id,omitempty"`
	Text        string `json:"text"`
	MarkedCount int    `json:"marked_count,omitempty"`
}

// QuestionResponse представляет вопрос в формате для клиента
type QuestionResponse struct {
	ID          uint             `json:"id,omitempty"`
	Text        string           `json:"text"`
	Multiple    bool             `json:"multiple"`
	TextAllowed bool             `json:"text_allowed"`
	Options     []OptionResponse `json:"options"`
}

// FormResponse представляет форму в формате для клиента
type FormResponse struct {
	ID        uint               `json:"id,omitempty"`
	Name      string             `json:"name"`
	IsSurvey  bool               `json:"is_survey"`
	Questions []QuestionResponse `json:"questions"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewFormResponse собирает DTO формы.
// withIDs управляет выдачей идентификаторов: пользовательский просмотр
// получает только тексты, административное редактирование - еще и ID.
// withCounts добавляет счетчики отметок вариантов.
func NewFormResponse(form *entity.Form, withIDs, withCounts bool) FormResponse {
	resp := FormResponse{
		Name:      form.Name,
		IsSurvey:  form.IsSurvey,
		Questions: make([]QuestionResponse, 0, len(form.Questions)),
		CreatedAt: form.CreatedAt,
	}
	if withIDs {
		resp.ID = form.ID
	}

	for _, q := range form.Questions {
		qr := QuestionResponse{
			Text:        q.Text,
			Multiple:    q.Multiple,
			TextAllowed: q.TextAllowed,
			Options:     make([]OptionResponse, 0, len(q.Options)),
		}
		if withIDs {
			qr.ID = q.ID
		}
		for _, o := range q.Options {
			or := OptionResponse{Text: o.Text}
			if withIDs {
				or.ID = o.ID
			}
			if withCounts {
				or.MarkedCount = o.MarkedCount
			}
			qr.Options = append(qr.Options, or)
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}

// NewFormResponseList собирает список DTO форм
func NewFormResponseList(forms []entity.Form, withIDs, withCounts bool) []FormResponse {
	out := make([]FormResponse, 0, len(forms))
	for i := range forms {
		out = append(out, NewFormResponse(&forms[i], withIDs, withCounts))
	}
	return out
}
