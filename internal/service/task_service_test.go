package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
	"github.com/yourusername/engage-api/internal/service/taskrunner"
)

func newTestTaskService(t *testing.T, taskRepo *MockTaskRepo) *TaskService {
	scheduler := taskrunner.NewScheduler(nil, &taskrunner.Dependencies{
		TaskRepo:   taskRepo,
		UserRepo:   new(MockUserRepo),
		AnswerRepo: new(MockAnswerRepo),
		AdminRepo:  new(MockAdminRepo),
	})
	s, err := NewTaskService(taskRepo, scheduler, 1, taskrunner.UnitDays)
	require.NoError(t, err)
	t.Cleanup(s.Shutdown)
	return s
}

func TestTaskService_SetOrUpdateTimer_CreatesNew(t *testing.T) {
	// Arrange: задачи еще нет - создается новая строка
	taskRepo := new(MockTaskRepo)
	taskRepo.On("GetByAdminAndKind", uint(1), entity.TaskKindResetPoints).
		Return(nil, fmt.Errorf("%w: task", apperrors.ErrNotFound))
	taskRepo.On("Create", mock.AnythingOfType("*entity.Task")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Task).ID = 42
	}).Return(nil)
	// Цикл опроса перечитывает задачу из своей горутины; к моменту
	// проверки ожиданий первый опрос мог еще не случиться - Maybe
	taskRepo.On("GetByID", uint(42)).Return(&entity.Task{
		ID: 42, AdminID: 1, Kind: entity.TaskKindResetPoints,
		DurationValue: 2, DurationUnit: taskrunner.UnitDays, AnchorTime: time.Now(),
	}, nil).Maybe()

	s := newTestTaskService(t, taskRepo)

	// Act
	task, err := s.SetOrUpdateTimer(1, entity.TaskKindResetPoints, 2, taskrunner.UnitDays)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), task.ID)
	assert.Equal(t, 2, task.DurationValue)
	assert.Equal(t, taskrunner.UnitDays, task.DurationUnit)
	taskRepo.AssertExpectations(t)
}

func TestTaskService_SetOrUpdateTimer_ReschedulesExisting(t *testing.T) {
	// Тест: существующая строка мутирует, новой записи не появляется
	existing := &entity.Task{
		ID: 7, AdminID: 1, Kind: entity.TaskKindSessionWinners,
		DurationValue: 1, DurationUnit: taskrunner.UnitDays,
		AnchorTime: time.Now().Add(-12 * time.Hour), Completed: true,
	}

	taskRepo := new(MockTaskRepo)
	taskRepo.On("GetByAdminAndKind", uint(1), entity.TaskKindSessionWinners).Return(existing, nil)
	taskRepo.On("Reschedule", uint(7), 6, taskrunner.UnitHours, mock.AnythingOfType("time.Time")).Return(nil)
	taskRepo.On("GetByID", uint(7)).Return(&entity.Task{
		ID: 7, AdminID: 1, Kind: entity.TaskKindSessionWinners,
		DurationValue: 6, DurationUnit: taskrunner.UnitHours, AnchorTime: time.Now(),
	}, nil)

	s := newTestTaskService(t, taskRepo)

	task, err := s.SetOrUpdateTimer(1, entity.TaskKindSessionWinners, 6, taskrunner.UnitHours)

	require.NoError(t, err)
	assert.Equal(t, uint(7), task.ID)
	assert.Equal(t, 6, task.DurationValue)
	taskRepo.AssertNotCalled(t, "Create", mock.Anything)
	taskRepo.AssertExpectations(t)
}

func TestTaskService_SetOrUpdateTimer_IncompleteData(t *testing.T) {
	taskRepo := new(MockTaskRepo)
	s := newTestTaskService(t, taskRepo)

	_, err := s.SetOrUpdateTimer(1, "", 0, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "incomplete task data")
	taskRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTaskService_SetOrUpdateTimer_UnknownKind(t *testing.T) {
	taskRepo := new(MockTaskRepo)
	s := newTestTaskService(t, taskRepo)

	_, err := s.SetOrUpdateTimer(1, "wipe_everything", 1, taskrunner.UnitDays)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestTaskService_SetOrUpdateTimer_UnsupportedUnit(t *testing.T) {
	taskRepo := new(MockTaskRepo)
	s := newTestTaskService(t, taskRepo)

	_, err := s.SetOrUpdateTimer(1, entity.TaskKindResetPoints, 2, "weeks")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "unsupported time unit")
}

func TestTaskService_GetTaskStatus(t *testing.T) {
	anchor := time.Now().Add(-30 * time.Minute)
	task := &entity.Task{
		ID: 3, AdminID: 1, Kind: entity.TaskKindResetPoints,
		DurationValue: 2, DurationUnit: taskrunner.UnitHours, AnchorTime: anchor,
	}

	taskRepo := new(MockTaskRepo)
	taskRepo.On("GetByAdminAndKind", uint(1), entity.TaskKindResetPoints).Return(task, nil)

	s := newTestTaskService(t, taskRepo)

	status, err := s.GetTaskStatus(1, entity.TaskKindResetPoints)

	require.NoError(t, err)
	assert.Equal(t, anchor.Add(2*time.Hour), status.ExecuteAt)
	assert.NotEmpty(t, status.SinceAnchor)
	assert.NotEqual(t, "0s", status.Remaining, "До срабатывания еще полтора часа")
	assert.False(t, status.TimerRunning, "Таймер в этом процессе не запускался")
}

func TestTaskService_EnsureDefaultTasks(t *testing.T) {
	// Тест: существующая задача не трогается, недостающая создается
	taskRepo := new(MockTaskRepo)
	taskRepo.On("GetByAdminAndKind", uint(9), entity.TaskKindResetPoints).Return(&entity.Task{
		ID: 1, AdminID: 9, Kind: entity.TaskKindResetPoints,
		DurationValue: 1, DurationUnit: taskrunner.UnitDays, AnchorTime: time.Now(),
	}, nil)
	taskRepo.On("GetByAdminAndKind", uint(9), entity.TaskKindSessionWinners).
		Return(nil, fmt.Errorf("%w: task", apperrors.ErrNotFound))
	taskRepo.On("Create", mock.MatchedBy(func(task *entity.Task) bool {
		return task.AdminID == 9 && task.Kind == entity.TaskKindSessionWinners
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Task).ID = 2
	}).Return(nil)
	taskRepo.On("GetByID", uint(2)).Return(&entity.Task{
		ID: 2, AdminID: 9, Kind: entity.TaskKindSessionWinners,
		DurationValue: 1, DurationUnit: taskrunner.UnitDays, AnchorTime: time.Now(),
	}, nil)

	s := newTestTaskService(t, taskRepo)

	require.NoError(t, s.EnsureDefaultTasks(9))
	taskRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "0s", humanizeDuration(0))
	assert.Equal(t, "45s", humanizeDuration(45*time.Second))
	assert.Equal(t, "2m", humanizeDuration(2*time.Minute))
	assert.Equal(t, "1h 30m", humanizeDuration(90*time.Minute))
	assert.Equal(t, "2d 3h", humanizeDuration(51*time.Hour))
}
