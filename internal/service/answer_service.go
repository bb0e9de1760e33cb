package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// CompletionBonusSpins - сколько спинов начисляется за полное прохождение формы
const CompletionBonusSpins = 10

// AnswerService обрабатывает ответы пользователей: фиксацию, проверку
// правильности и бонус за завершение формы
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	optionRepo   repository.OptionRepository
	formRepo     repository.FormRepository
	userRepo     repository.UserRepository
}

// MarkInput описывает ответ пользователя на вопрос
type MarkInput struct {
	UserID     uint
	QuestionID uint
	OptionIDs  []uint
	// Text - свободный текстовый ответ, допустим только если
	// вопрос разрешает его
	Text string
}

// MarkResult описывает итог фиксации ответа
type MarkResult struct {
	// Graded - проверялся ли ответ на правильность.
	// У опросов и вопросов без правильных вариантов проверка не выполняется.
	Graded bool `json:"graded"`
	// AllAnswersMatched - выбраны все правильные варианты и ни одного лишнего
	AllAnswersMatched bool `json:"all_answers_matched"`
	// CorrectSelected - выбранные варианты, оказавшиеся правильными
	CorrectSelected []uint `json:"correct_selected"`
	// IncorrectSelected - выбранные варианты, оказавшиеся неправильными
	IncorrectSelected []uint `json:"incorrect_selected"`
	// CorrectOptionIDs - полный список правильных вариантов вопроса
	CorrectOptionIDs []uint `json:"correct_option_ids"`
	// FormCompleted - этим ответом закрыт последний вопрос формы
	FormCompleted bool `json:"form_completed"`
	// BonusSpins - начисленные за завершение спины (0, если бонус уже был)
	BonusSpins int `json:"bonus_spins"`
}

// NewAnswerService создает новый сервис ответов
func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	formRepo repository.FormRepository,
	userRepo repository.UserRepository,
) (*AnswerService, error) {
	if answerRepo == nil {
		return nil, fmt.Errorf("AnswerRepository is required for AnswerService")
	}
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for AnswerService")
	}
	if optionRepo == nil {
		return nil, fmt.Errorf("OptionRepository is required for AnswerService")
	}
	if formRepo == nil {
		return nil, fmt.Errorf("FormRepository is required for AnswerService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AnswerService")
	}
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		optionRepo:   optionRepo,
		formRepo:     formRepo,
		userRepo:     userRepo,
	}, nil
}

// Mark фиксирует ответ пользователя на вопрос. Повторный ответ на тот же
// вопрос отклоняется без изменения счетчиков. После фиксации проверяется
// завершение формы и, для викторин, правильность ответа.
func (s *AnswerService) Mark(input MarkInput) (*MarkResult, error) {
	input.Text = strings.TrimSpace(input.Text)
	if len(input.OptionIDs) == 0 && input.Text == "" {
		return nil, fmt.Errorf("%w: answer must select options or provide text", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.GetByID(input.QuestionID)
	if err != nil {
		return nil, err
	}

	if input.Text != "" && !question.TextAllowed {
		return nil, fmt.Errorf("%w: question does not accept a text answer", apperrors.ErrValidation)
	}
	if !question.Multiple && len(input.OptionIDs) > 1 {
		return nil, fmt.Errorf("%w: question accepts a single option", apperrors.ErrValidation)
	}
	if err := s.validateOptionsBelong(question, input.OptionIDs); err != nil {
		return nil, err
	}

	answer := &entity.UserQuestion{
		UserID:       input.UserID,
		QuestionID:   input.QuestionID,
		UserResponse: input.Text,
	}
	// Создание записи и инкремент счетчиков - одна транзакция;
	// конфликт дубликата откатывает всё целиком
	if err := s.answerRepo.Mark(answer, input.OptionIDs); err != nil {
		return nil, err
	}

	result := &MarkResult{
		CorrectSelected:   []uint{},
		IncorrectSelected: []uint{},
		CorrectOptionIDs:  []uint{},
	}

	if err := s.applyCompletion(input.UserID, question.FormID, result); err != nil {
		return nil, err
	}

	form, err := s.formRepo.GetByID(question.FormID)
	if err != nil {
		return nil, err
	}
	if form.IsSurvey {
		return result, nil
	}

	if err := s.grade(input.OptionIDs, question.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// validateOptionsBelong проверяет, что все выбранные варианты
// принадлежат отвечаемому вопросу
func (s *AnswerService) validateOptionsBelong(question *entity.Question, optionIDs []uint) error {
	for _, id := range optionIDs {
		option, err := s.optionRepo.GetByID(id)
		if err != nil {
			return err
		}
		if option.QuestionID != question.ID {
			return fmt.Errorf("%w: option #%d does not belong to question #%d", apperrors.ErrValidation, id, question.ID)
		}
	}
	return nil
}

// applyCompletion начисляет бонус, если этим ответом закрыт последний
// вопрос формы. Запись user_forms уникальна, поэтому бонус не дублируется
// даже при гонке двух последних ответов.
func (s *AnswerService) applyCompletion(userID, formID uint, result *MarkResult) error {
	total, err := s.questionRepo.CountByForm(formID)
	if err != nil {
		return err
	}
	answered, err := s.answerRepo.CountAnsweredInForm(userID, formID)
	if err != nil {
		return err
	}
	if total == 0 || answered < total {
		return nil
	}

	result.FormCompleted = true

	err = s.answerRepo.CreateUserForm(&entity.UserForm{UserID: userID, FormID: formID})
	if err != nil {
		if isConflict(err) {
			// Завершение уже зафиксировано, бонус был начислен раньше
			return nil
		}
		return err
	}

	if err := s.userRepo.AddSpins(userID, CompletionBonusSpins); err != nil {
		return err
	}
	result.BonusSpins = CompletionBonusSpins

	log.Printf("[AnswerService] Пользователь #%d завершил форму #%d, начислено %d спинов",
		userID, formID, CompletionBonusSpins)
	return nil
}

// grade сверяет выбранные варианты с правильными. Ответ засчитывается
// полностью правильным только при точном совпадении множеств.
// Вопрос без правильных вариантов не оценивается вовсе.
func (s *AnswerService) grade(selectedIDs []uint, questionID uint, result *MarkResult) error {
	correctIDs, err := s.optionRepo.CorrectIDsByQuestion(questionID)
	if err != nil {
		return err
	}
	if len(correctIDs) == 0 {
		return nil
	}

	result.Graded = true
	result.CorrectOptionIDs = correctIDs

	correct := make(map[uint]struct{}, len(correctIDs))
	for _, id := range correctIDs {
		correct[id] = struct{}{}
	}

	selected := make(map[uint]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
		if _, ok := correct[id]; ok {
			result.CorrectSelected = append(result.CorrectSelected, id)
		} else {
			result.IncorrectSelected = append(result.IncorrectSelected, id)
		}
	}

	allCorrectSelected := true
	for _, id := range correctIDs {
		if _, ok := selected[id]; !ok {
			allCorrectSelected = false
			break
		}
	}

	result.AllAnswersMatched = allCorrectSelected && len(result.IncorrectSelected) == 0
	return nil
}
