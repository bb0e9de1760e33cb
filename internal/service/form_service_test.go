package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

func newTestFormService(t *testing.T) (*FormService, *MockFormRepo, *MockQuestionRepo, *MockOptionRepo, *MockAnswerRepo) {
	t.Helper()
	formRepo := new(MockFormRepo)
	questionRepo := new(MockQuestionRepo)
	optionRepo := new(MockOptionRepo)
	answerRepo := new(MockAnswerRepo)
	s, err := NewFormService(formRepo, questionRepo, optionRepo, answerRepo)
	require.NoError(t, err)
	return s, formRepo, questionRepo, optionRepo, answerRepo
}

func TestFormService_CreateForm_BuildsTree(t *testing.T) {
	// Arrange
	s, formRepo, _, _, _ := newTestFormService(t)
	formRepo.On("CreateWithContent", mock.AnythingOfType("*entity.Form")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Form).ID = 7
		}).
		Return(nil)

	input := CreateFormInput{
		Name: "  Итоговая викторина  ",
		Questions: []CreateQuestionInput{
			{
				Text:     "Столица Франции?",
				Multiple: false,
				Options: []CreateOptionInput{
					{Text: "Париж", IsCorrect: true},
					{Text: "Лион"},
				},
			},
			{Text: "Свободный ответ", TextAllowed: true},
		},
	}

	// Act
	form, err := s.CreateForm(3, input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), form.ID)
	assert.Equal(t, uint(3), form.AdminID)
	assert.Equal(t, "Итоговая викторина", form.Name)
	require.Len(t, form.Questions, 2)
	assert.Len(t, form.Questions[0].Options, 2)
	assert.True(t, form.Questions[0].Options[0].IsCorrect)
	assert.True(t, form.Questions[1].TextAllowed)
	formRepo.AssertExpectations(t)
}

func TestFormService_CreateForm_RequiresQuestions(t *testing.T) {
	s, formRepo, _, _, _ := newTestFormService(t)

	_, err := s.CreateForm(3, CreateFormInput{Name: "Пустая"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	formRepo.AssertNotCalled(t, "CreateWithContent", mock.Anything)
}

func TestFormService_CreateForm_QuestionNeedsOptionsOrText(t *testing.T) {
	s, _, _, _, _ := newTestFormService(t)

	// Вопрос без вариантов и без свободного ответа отвечать нечем
	_, err := s.CreateForm(3, CreateFormInput{
		Name:      "Форма",
		Questions: []CreateQuestionInput{{Text: "Без вариантов"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestFormService_DeleteForm_DelegatesCascadeToRepo(t *testing.T) {
	// Arrange
	s, formRepo, _, _, _ := newTestFormService(t)
	formRepo.On("GetByID", uint(5)).Return(&entity.Form{ID: 5, AdminID: 3}, nil)
	formRepo.On("DeleteCascade", uint(5)).Return(nil)

	// Act
	err := s.DeleteForm(3, 5)

	// Assert: порядок удаления зависимостей обеспечивает транзакция репозитория
	require.NoError(t, err)
	formRepo.AssertCalled(t, "DeleteCascade", uint(5))
}

func TestFormService_DeleteForm_ForeignFormForbidden(t *testing.T) {
	// Arrange: форма принадлежит другому администратору
	s, formRepo, _, _, _ := newTestFormService(t)
	formRepo.On("GetByID", uint(5)).Return(&entity.Form{ID: 5, AdminID: 99}, nil)

	// Act
	err := s.DeleteForm(3, 5)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	formRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything)
}

func TestFormService_UncompletedFormIDs(t *testing.T) {
	// Arrange
	s, formRepo, _, _, answerRepo := newTestFormService(t)
	formRepo.On("ListIDsByAdmin", uint(3)).Return([]uint{1, 2, 3}, nil)
	answerRepo.On("CompletedFormIDs", uint(10)).Return([]uint{2}, nil)

	// Act
	ids, err := s.UncompletedFormIDs(10, 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids)
}

func TestFormService_FormForUser_FiltersAnsweredQuestions(t *testing.T) {
	// Arrange
	s, formRepo, _, _, answerRepo := newTestFormService(t)
	formRepo.On("GetWithContent", uint(1)).Return(&entity.Form{
		ID:      1,
		AdminID: 3,
		Questions: []entity.Question{
			{ID: 10, Text: "Первый"},
			{ID: 11, Text: "Второй"},
			{ID: 12, Text: "Третий"},
		},
	}, nil)
	answerRepo.On("AnsweredQuestionIDs", uint(10), uint(1)).Return([]uint{10, 12}, nil)

	// Act
	form, err := s.FormForUser(10, 1)

	// Assert: остаются только вопросы без ответа
	require.NoError(t, err)
	require.Len(t, form.Questions, 1)
	assert.Equal(t, uint(11), form.Questions[0].ID)
}
