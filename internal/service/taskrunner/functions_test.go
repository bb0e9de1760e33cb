package taskrunner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/engage-api/internal/domain/entity"
)

func newTestFunctionSet(taskRepo *MockTaskRepo, userRepo *MockUserRepo, answerRepo *MockAnswerRepo, adminRepo *MockAdminRepo) *FunctionSet {
	return NewFunctionSet(DefaultConfig(), &Dependencies{
		TaskRepo:   taskRepo,
		UserRepo:   userRepo,
		AnswerRepo: answerRepo,
		AdminRepo:  adminRepo,
	})
}

func TestFunctionSet_Knows(t *testing.T) {
	fs := newTestFunctionSet(new(MockTaskRepo), new(MockUserRepo), new(MockAnswerRepo), new(MockAdminRepo))

	assert.True(t, fs.Knows(entity.TaskKindResetPoints))
	assert.True(t, fs.Knows(entity.TaskKindSessionWinners))
	assert.False(t, fs.Knows("unknown_kind"))
}

func TestFunctionSet_Run_UnknownKind(t *testing.T) {
	fs := newTestFunctionSet(new(MockTaskRepo), new(MockUserRepo), new(MockAnswerRepo), new(MockAdminRepo))

	err := fs.Run(context.Background(), "no_such_task", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task kind")
}

func TestFunctionSet_ResetPoints(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepo)
	mockUserRepo.On("ResetPointsForAdmin", uint(7)).Return(int64(42), nil)

	fs := newTestFunctionSet(new(MockTaskRepo), mockUserRepo, new(MockAnswerRepo), new(MockAdminRepo))

	// Act
	err := fs.Run(context.Background(), entity.TaskKindResetPoints, 7)

	// Assert
	require.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestFunctionSet_SessionWinners_TopThree(t *testing.T) {
	// Arrange
	anchor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockTaskRepo := new(MockTaskRepo)
	mockTaskRepo.On("GetByAdminAndKind", uint(1), entity.TaskKindSessionWinners).Return(&entity.Task{
		ID:         10,
		AdminID:    1,
		Kind:       entity.TaskKindSessionWinners,
		AnchorTime: anchor,
	}, nil)

	mockAnswerRepo := new(MockAnswerRepo)
	mockAnswerRepo.On("DistinctUserIDsAnsweredAfter", anchor).Return([]uint{1, 2, 3, 4}, nil)

	mockUserRepo := new(MockUserRepo)
	mockUserRepo.On("TopByPoints", []uint{1, 2, 3, 4}, 3).Return([]entity.User{
		{ID: 2, Name: "Anna", Points: 90},
		{ID: 4, Name: "Boris", Points: 70},
		{ID: 1, Name: "Vera", Points: 50},
	}, nil)

	mockAdminRepo := new(MockAdminRepo)
	mockAdminRepo.On("UpdateSessionWinners", uint(1), entity.SessionWinnerList{
		{Name: "Anna", Points: 90},
		{Name: "Boris", Points: 70},
		{Name: "Vera", Points: 50},
	}).Return(nil)

	fs := newTestFunctionSet(mockTaskRepo, mockUserRepo, mockAnswerRepo, mockAdminRepo)

	// Act
	err := fs.Run(context.Background(), entity.TaskKindSessionWinners, 1)

	// Assert
	require.NoError(t, err)
	mockTaskRepo.AssertExpectations(t)
	mockAnswerRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockAdminRepo.AssertExpectations(t)
}

func TestFunctionSet_SessionWinners_EmptySession(t *testing.T) {
	// Тест: никто не отвечал после якоря - снапшот пустой, ошибки нет
	anchor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockTaskRepo := new(MockTaskRepo)
	mockTaskRepo.On("GetByAdminAndKind", uint(1), entity.TaskKindSessionWinners).Return(&entity.Task{
		ID:         10,
		AdminID:    1,
		Kind:       entity.TaskKindSessionWinners,
		AnchorTime: anchor,
	}, nil)

	mockAnswerRepo := new(MockAnswerRepo)
	mockAnswerRepo.On("DistinctUserIDsAnsweredAfter", anchor).Return([]uint{}, nil)

	mockUserRepo := new(MockUserRepo)
	mockAdminRepo := new(MockAdminRepo)
	mockAdminRepo.On("UpdateSessionWinners", uint(1), entity.SessionWinnerList{}).Return(nil)

	fs := newTestFunctionSet(mockTaskRepo, mockUserRepo, mockAnswerRepo, mockAdminRepo)

	err := fs.Run(context.Background(), entity.TaskKindSessionWinners, 1)

	require.NoError(t, err)
	// TopByPoints не должен вызываться для пустого множества
	mockUserRepo.AssertNotCalled(t, "TopByPoints", mock.Anything, mock.Anything)
	mockAdminRepo.AssertExpectations(t)
}
