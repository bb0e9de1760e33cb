package taskrunner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// TaskFunc - процедура, привязанная к виду задачи
type TaskFunc func(ctx context.Context, adminID uint) error

// FunctionSet - закрытый реестр функций задач: отображение вида задачи
// на эффективную процедуру.
type FunctionSet struct {
	config *Config
	deps   *Dependencies
	funcs  map[string]TaskFunc
}

// NewFunctionSet создает реестр с обоими обязательными видами задач
func NewFunctionSet(config *Config, deps *Dependencies) *FunctionSet {
	f := &FunctionSet{
		config: config,
		deps:   deps,
	}
	f.funcs = map[string]TaskFunc{
		entity.TaskKindResetPoints:    f.resetPoints,
		entity.TaskKindSessionWinners: f.computeSessionWinners,
	}
	return f
}

// Run выполняет функцию, привязанную к виду задачи
func (f *FunctionSet) Run(ctx context.Context, kind string, adminID uint) error {
	fn, ok := f.funcs[kind]
	if !ok {
		return fmt.Errorf("%w: unknown task kind %q", apperrors.ErrValidation, kind)
	}
	return fn(ctx, adminID)
}

// Knows сообщает, зарегистрирована ли функция для вида задачи
func (f *FunctionSet) Knows(kind string) bool {
	_, ok := f.funcs[kind]
	return ok
}

// resetPoints обнуляет очки пользователей, проходивших формы администратора.
// Сброс строго ограничен аудиторией этого администратора.
func (f *FunctionSet) resetPoints(ctx context.Context, adminID uint) error {
	affected, err := f.deps.UserRepo.ResetPointsForAdmin(adminID)
	if err != nil {
		return fmt.Errorf("reset points for admin #%d failed: %w", adminID, err)
	}

	log.Printf("[TaskRunner] Сброс очков для admin #%d: затронуто пользователей %d", adminID, affected)
	return nil
}

// computeSessionWinners находит пользователей, отвечавших после якоря задачи,
// ранжирует их по очкам и сохраняет топ-N на записи администратора.
// Отсутствие подходящих пользователей - не ошибка: снапшот становится пустым.
func (f *FunctionSet) computeSessionWinners(ctx context.Context, adminID uint) error {
	task, err := f.deps.TaskRepo.GetByAdminAndKind(adminID, entity.TaskKindSessionWinners)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("session winners task not found for admin #%d: %w", adminID, err)
		}
		return err
	}

	userIDs, err := f.deps.AnswerRepo.DistinctUserIDsAnsweredAfter(task.AnchorTime)
	if err != nil {
		return fmt.Errorf("find session users for admin #%d failed: %w", adminID, err)
	}

	snapshot := entity.SessionWinnerList{}
	if len(userIDs) > 0 {
		winners, err := f.deps.UserRepo.TopByPoints(userIDs, f.config.TopWinners)
		if err != nil {
			return fmt.Errorf("rank session users for admin #%d failed: %w", adminID, err)
		}
		for _, w := range winners {
			snapshot = append(snapshot, entity.SessionWinner{Name: w.Name, Points: w.Points})
		}
	}

	if err := f.deps.AdminRepo.UpdateSessionWinners(adminID, snapshot); err != nil {
		return fmt.Errorf("persist session winners for admin #%d failed: %w", adminID, err)
	}

	// Зеркалируем снапшот в кеш, чтобы лидерборд не ходил в базу
	if f.deps.CacheRepo != nil {
		key := fmt.Sprintf("session_winners:%d", adminID)
		if err := f.deps.CacheRepo.SetJSON(key, snapshot, 0); err != nil {
			// Кеш вторичен: ошибка не должна срывать выполнение задачи
			log.Printf("[TaskRunner] Не удалось записать снапшот победителей в кеш для admin #%d: %v", adminID, err)
		}
	}

	log.Printf("[TaskRunner] Снапшот победителей сессии для admin #%d: %d пользователей (якорь %s)",
		adminID, len(snapshot), task.AnchorTime.Format(time.RFC3339))
	return nil
}
