package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// FormService предоставляет методы для работы с формами, вопросами и вариантами
type FormService struct {
	formRepo     repository.FormRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	answerRepo   repository.AnswerRepository
}

// CreateFormInput описывает форму целиком при создании
type CreateFormInput struct {
	Name      string
	IsSurvey  bool
	Questions []CreateQuestionInput
}

// CreateQuestionInput описывает вопрос при создании формы
type CreateQuestionInput struct {
	Text        string
	Multiple    bool
	TextAllowed bool
	Options     []CreateOptionInput
}

// CreateOptionInput описывает вариант ответа при создании формы
type CreateOptionInput struct {
	Text      string
	IsCorrect bool
}

// NewFormService создает новый сервис форм
func NewFormService(
	formRepo repository.FormRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	answerRepo repository.AnswerRepository,
) (*FormService, error) {
	if formRepo == nil {
		return nil, fmt.Errorf("FormRepository is required for FormService")
	}
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for FormService")
	}
	if optionRepo == nil {
		return nil, fmt.Errorf("OptionRepository is required for FormService")
	}
	if answerRepo == nil {
		return nil, fmt.Errorf("AnswerRepository is required for FormService")
	}
	return &FormService{
		formRepo:     formRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		answerRepo:   answerRepo,
	}, nil
}

// CreateForm создает форму вместе с вопросами и вариантами в одной транзакции
func (s *FormService) CreateForm(adminID uint, input CreateFormInput) (*entity.Form, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: form name is required", apperrors.ErrValidation)
	}
	if len(input.Questions) == 0 {
		return nil, fmt.Errorf("%w: form must contain at least one question", apperrors.ErrValidation)
	}

	form := &entity.Form{
		AdminID:  adminID,
		Name:     input.Name,
		IsSurvey: input.IsSurvey,
	}

	for qi, q := range input.Questions {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return nil, fmt.Errorf("%w: question %d has no text", apperrors.ErrValidation, qi+1)
		}
		if len(q.Options) == 0 && !q.TextAllowed {
			return nil, fmt.Errorf("%w: question %d needs options or a text answer", apperrors.ErrValidation, qi+1)
		}

		question := entity.Question{
			Text:        q.Text,
			Multiple:    q.Multiple,
			TextAllowed: q.TextAllowed,
		}
		for oi, o := range q.Options {
			o.Text = strings.TrimSpace(o.Text)
			if o.Text == "" {
				return nil, fmt.Errorf("%w: option %d of question %d has no text", apperrors.ErrValidation, oi+1, qi+1)
			}
			question.Options = append(question.Options, entity.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		form.Questions = append(form.Questions, question)
	}

	if err := s.formRepo.CreateWithContent(form); err != nil {
		return nil, err
	}

	log.Printf("[FormService] Создана форма #%d (%s) с %d вопросами для admin #%d",
		form.ID, form.Name, len(form.Questions), adminID)
	return form, nil
}

// ListForms возвращает все формы администратора с содержимым
func (s *FormService) ListForms(adminID uint) ([]entity.Form, error) {
	return s.formRepo.ListByAdmin(adminID)
}

// GetForm возвращает форму с содержимым, проверяя принадлежность администратору
func (s *FormService) GetForm(adminID, formID uint) (*entity.Form, error) {
	form, err := s.formRepo.GetWithContent(formID)
	if err != nil {
		return nil, err
	}
	if form.AdminID != adminID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrFormAccessDenied)
	}
	return form, nil
}

// UpdateQuestionText меняет текст вопроса после проверки принадлежности
func (s *FormService) UpdateQuestionText(adminID, questionID uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}
	if err := s.ensureOwnership(adminID, question.FormID); err != nil {
		return err
	}
	return s.questionRepo.UpdateText(questionID, text)
}

// UpdateOptionText меняет текст варианта ответа после проверки принадлежности
func (s *FormService) UpdateOptionText(adminID, optionID uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: option text is required", apperrors.ErrValidation)
	}

	option, err := s.optionRepo.GetByID(optionID)
	if err != nil {
		return err
	}
	question, err := s.questionRepo.GetByID(option.QuestionID)
	if err != nil {
		return err
	}
	if err := s.ensureOwnership(adminID, question.FormID); err != nil {
		return err
	}
	return s.optionRepo.UpdateText(optionID, text)
}

// DeleteForm удаляет форму вместе с вопросами, вариантами и ответами
func (s *FormService) DeleteForm(adminID, formID uint) error {
	if err := s.ensureOwnership(adminID, formID); err != nil {
		return err
	}
	if err := s.formRepo.DeleteCascade(formID); err != nil {
		return err
	}
	log.Printf("[FormService] Удалена форма #%d (admin #%d)", formID, adminID)
	return nil
}

// ResetResponses удаляет ответы пользователей на форму и обнуляет счетчики,
// сама форма остается
func (s *FormService) ResetResponses(adminID, formID uint) error {
	if err := s.ensureOwnership(adminID, formID); err != nil {
		return err
	}
	return s.formRepo.ResetResponses(formID)
}

// UncompletedFormIDs возвращает идентификаторы форм администратора,
// которые пользователь еще не завершил
func (s *FormService) UncompletedFormIDs(userID, adminID uint) ([]uint, error) {
	formIDs, err := s.formRepo.ListIDsByAdmin(adminID)
	if err != nil {
		return nil, err
	}
	completedIDs, err := s.answerRepo.CompletedFormIDs(userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[uint]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	uncompleted := make([]uint, 0, len(formIDs))
	for _, id := range formIDs {
		if _, done := completed[id]; !done {
			uncompleted = append(uncompleted, id)
		}
	}
	return uncompleted, nil
}

// FormForUser возвращает форму, оставив только вопросы, на которые
// пользователь еще не отвечал. Ответивший на все получает пустой список.
func (s *FormService) FormForUser(userID, formID uint) (*entity.Form, error) {
	form, err := s.formRepo.GetWithContent(formID)
	if err != nil {
		return nil, err
	}

	answeredIDs, err := s.answerRepo.AnsweredQuestionIDs(userID, formID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uint]struct{}, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = struct{}{}
	}

	remaining := make([]entity.Question, 0, len(form.Questions))
	for _, q := range form.Questions {
		if _, done := answered[q.ID]; !done {
			remaining = append(remaining, q)
		}
	}
	form.Questions = remaining
	return form, nil
}

// ensureOwnership проверяет, что форма принадлежит администратору
func (s *FormService) ensureOwnership(adminID, formID uint) error {
	form, err := s.formRepo.GetByID(formID)
	if err != nil {
		return err
	}
	if form.AdminID != adminID {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrFormAccessDenied)
	}
	return nil
}
