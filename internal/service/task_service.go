package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
	"github.com/yourusername/engage-api/internal/service/taskrunner"
)

// TaskService управляет отложенными задачами администратора:
// постановкой и перепланированием таймеров, статусом и задачами по умолчанию.
type TaskService struct {
	taskRepo  repository.TaskRepository
	scheduler *taskrunner.Scheduler

	defaultDurationValue int
	defaultDurationUnit  string
}

// TaskStatus описывает состояние задачи для просмотра администратором
type TaskStatus struct {
	Task *entity.Task `json:"task"`
	// ExecuteAt - расчетный момент срабатывания (якорь + длительность)
	ExecuteAt time.Time `json:"execute_at"`
	// SinceAnchor - сколько прошло с момента постановки, в человекочитаемом виде
	SinceAnchor string `json:"since_anchor"`
	// Remaining - сколько осталось до срабатывания; "0s", если срок прошел
	Remaining string `json:"remaining"`
	// TimerRunning - работает ли цикл опроса в этом процессе
	TimerRunning bool `json:"timer_running"`
}

// NewTaskService создает сервис отложенных задач
func NewTaskService(
	taskRepo repository.TaskRepository,
	scheduler *taskrunner.Scheduler,
	defaultDurationValue int,
	defaultDurationUnit string,
) (*TaskService, error) {
	if taskRepo == nil {
		return nil, fmt.Errorf("TaskRepository is required for TaskService")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("Scheduler is required for TaskService")
	}
	if _, err := taskrunner.DurationFromUnits(defaultDurationValue, defaultDurationUnit); err != nil {
		return nil, fmt.Errorf("invalid default task duration: %w", err)
	}

	return &TaskService{
		taskRepo:             taskRepo,
		scheduler:            scheduler,
		defaultDurationValue: defaultDurationValue,
		defaultDurationUnit:  defaultDurationUnit,
	}, nil
}

// SetOrUpdateTimer ставит или перепланирует таймер задачи.
// Якорь всегда сбрасывается на текущий момент: старый отсчет
// при перепланировании не сохраняется.
func (s *TaskService) SetOrUpdateTimer(adminID uint, kind string, value int, unit string) (*entity.Task, error) {
	kind = strings.TrimSpace(kind)
	unit = strings.TrimSpace(unit)

	if kind == "" || unit == "" || value <= 0 {
		return nil, fmt.Errorf("%w: incomplete task data", apperrors.ErrValidation)
	}
	if !entity.IsValidTaskKind(kind) {
		return nil, fmt.Errorf("%w: unknown task kind %q", apperrors.ErrValidation, kind)
	}
	if _, err := taskrunner.DurationFromUnits(value, unit); err != nil {
		return nil, err
	}

	anchor := time.Now()

	task, err := s.taskRepo.GetByAdminAndKind(adminID, kind)
	switch {
	case err == nil:
		// Существующий таймер перепланируется: строка мутирует,
		// новой записи не появляется
		if err := s.taskRepo.Reschedule(task.ID, value, unit, anchor); err != nil {
			return nil, err
		}
		task, err = s.taskRepo.GetByID(task.ID)
		if err != nil {
			return nil, err
		}
	case isNotFound(err):
		task = &entity.Task{
			AdminID:       adminID,
			Kind:          kind,
			DurationValue: value,
			DurationUnit:  unit,
			AnchorTime:    anchor,
		}
		if err := s.taskRepo.Create(task); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.scheduler.StartTask(task); err != nil {
		return nil, fmt.Errorf("failed to start timer for task #%d: %w", task.ID, err)
	}

	log.Printf("[TaskService] Таймер задачи %s для admin #%d установлен: %d %s", kind, adminID, value, unit)
	return task, nil
}

// GetTaskStatus возвращает состояние задачи: когда поставлена,
// когда сработает и сколько осталось
func (s *TaskService) GetTaskStatus(adminID uint, kind string) (*TaskStatus, error) {
	if !entity.IsValidTaskKind(kind) {
		return nil, fmt.Errorf("%w: unknown task kind %q", apperrors.ErrValidation, kind)
	}

	task, err := s.taskRepo.GetByAdminAndKind(adminID, kind)
	if err != nil {
		return nil, err
	}

	duration, err := taskrunner.DurationFromUnits(task.DurationValue, task.DurationUnit)
	if err != nil {
		return nil, err
	}

	executeAt := task.AnchorTime.Add(duration)
	now := time.Now()

	remaining := executeAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	return &TaskStatus{
		Task:         task,
		ExecuteAt:    executeAt,
		SinceAnchor:  humanizeDuration(now.Sub(task.AnchorTime)),
		Remaining:    humanizeDuration(remaining),
		TimerRunning: s.scheduler.IsRunning(adminID, kind),
	}, nil
}

// ListTasks возвращает все задачи администратора
func (s *TaskService) ListTasks(adminID uint) ([]entity.Task, error) {
	return s.taskRepo.GetByAdmin(adminID)
}

// EnsureDefaultTasks создает задачи по умолчанию для нового администратора.
// Уже существующие задачи не трогаются.
func (s *TaskService) EnsureDefaultTasks(adminID uint) error {
	for _, kind := range entity.AllTaskKinds() {
		_, err := s.taskRepo.GetByAdminAndKind(adminID, kind)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return err
		}

		task := &entity.Task{
			AdminID:       adminID,
			Kind:          kind,
			DurationValue: s.defaultDurationValue,
			DurationUnit:  s.defaultDurationUnit,
			AnchorTime:    time.Now(),
		}
		if err := s.taskRepo.Create(task); err != nil {
			return fmt.Errorf("failed to create default task %s for admin #%d: %w", kind, adminID, err)
		}
		if err := s.scheduler.StartTask(task); err != nil {
			return err
		}
	}
	return nil
}

// Rehydrate восстанавливает таймеры незавершенных задач после перезапуска
func (s *TaskService) Rehydrate() error {
	return s.scheduler.Rehydrate()
}

// Shutdown останавливает все таймеры
func (s *TaskService) Shutdown() {
	s.scheduler.Shutdown()
}

// humanizeDuration переводит длительность в краткую строку вида "2d 3h 15m"
func humanizeDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
