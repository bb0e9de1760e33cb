package taskrunner

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// Scheduler запускает циклы опроса отложенных задач и следит, чтобы для
// каждой пары (администратор, вид задачи) работал не более чем один цикл.
type Scheduler struct {
	config    *Config
	deps      *Dependencies
	functions *FunctionSet
	registry  *Registry
	// nowFn подменяется в тестах
	nowFn func() time.Time
}

// NewScheduler создает планировщик. Передача nil вместо config
// означает конфигурацию по умолчанию.
func NewScheduler(config *Config, deps *Dependencies) *Scheduler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Scheduler{
		config:    config,
		deps:      deps,
		functions: NewFunctionSet(config, deps),
		registry:  NewRegistry(),
		nowFn:     time.Now,
	}
}

// StartTask запускает цикл опроса для задачи. Уже работающий цикл
// с тем же ключом останавливается и замещается новым - перепланирование
// не плодит параллельные таймеры одной логической задачи.
func (s *Scheduler) StartTask(task *entity.Task) error {
	if !s.functions.Knows(task.Kind) {
		return errors.New("no function bound for task kind " + task.Kind)
	}

	key := TaskKey{AdminID: task.AdminID, Kind: task.Kind}
	ctx, cancel := context.WithCancel(context.Background())
	token := s.registry.Register(key, cancel)

	go s.runPollLoop(ctx, key, token, task.ID)

	log.Printf("[TaskRunner] Запущен цикл опроса задачи #%d (%s, admin #%d)", task.ID, task.Kind, task.AdminID)
	return nil
}

// IsRunning сообщает, работает ли цикл опроса для пары (admin, kind)
func (s *Scheduler) IsRunning(adminID uint, kind string) bool {
	return s.registry.IsActive(TaskKey{AdminID: adminID, Kind: kind})
}

// Rehydrate восстанавливает циклы опроса для всех незавершенных задач.
// Вызывается один раз при старте процесса: таймеры живут только в памяти
// и перезапуск иначе оставил бы ожидающие задачи без поллеров.
func (s *Scheduler) Rehydrate() error {
	pending, err := s.deps.TaskRepo.GetPending()
	if err != nil {
		return err
	}

	for i := range pending {
		if err := s.StartTask(&pending[i]); err != nil {
			log.Printf("[TaskRunner] Не удалось восстановить задачу #%d: %v", pending[i].ID, err)
		}
	}

	log.Printf("[TaskRunner] Восстановлено задач после перезапуска: %d", len(pending))
	return nil
}

// Shutdown останавливает все циклы опроса
func (s *Scheduler) Shutdown() {
	s.registry.StopAll()
	log.Println("[TaskRunner] Все циклы опроса остановлены")
}

// runPollLoop опрашивает задачу до срабатывания или отмены.
// Первая проверка выполняется сразу: просроченная при перезапуске задача
// не должна ждать целый интервал.
func (s *Scheduler) runPollLoop(ctx context.Context, key TaskKey, token uint64, taskID uint) {
	defer s.registry.Release(key, token)

	if done := s.pollOnce(ctx, key, taskID); done {
		return
	}

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := s.pollOnce(ctx, key, taskID); done {
				return
			}
		}
	}
}

// pollOnce выполняет одну проверку задачи. Возвращает true, если цикл
// должен завершиться. Состояние всегда перечитывается из базы: копия
// в памяти могла устареть после перепланирования.
func (s *Scheduler) pollOnce(ctx context.Context, key TaskKey, taskID uint) bool {
	task, err := s.deps.TaskRepo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[TaskRunner] Задача #%d не найдена, цикл остановлен", taskID)
			return true
		}
		// Временная ошибка хранилища: пробуем на следующем тике
		log.Printf("[TaskRunner] Ошибка чтения задачи #%d: %v", taskID, err)
		return false
	}

	if task.Completed {
		return true
	}

	duration, err := DurationFromUnits(task.DurationValue, task.DurationUnit)
	if err != nil {
		log.Printf("[TaskRunner] Задача #%d с некорректной длительностью: %v", taskID, err)
		return true
	}

	executeAt := task.AnchorTime.Add(duration)
	if s.nowFn().Before(executeAt) {
		return false
	}

	if err := s.functions.Run(ctx, task.Kind, task.AdminID); err != nil {
		// Задача остается незавершенной: администратор перепланирует вручную
		log.Printf("[TaskRunner] Выполнение задачи #%d (%s) завершилось ошибкой: %v", taskID, task.Kind, err)
		return true
	}

	completed, err := s.deps.TaskRepo.CompleteIfPending(taskID)
	if err != nil {
		log.Printf("[TaskRunner] Не удалось пометить задачу #%d завершенной: %v", taskID, err)
		return true
	}
	if !completed {
		// Кто-то успел завершить или перепланировать задачу между чтением
		// и обновлением - наш результат вторичен
		log.Printf("[TaskRunner] Задача #%d уже была завершена параллельно", taskID)
		return true
	}

	log.Printf("[TaskRunner] Задача #%d (%s, admin #%d) выполнена", taskID, task.Kind, key.AdminID)
	return true
}
