package repository

import (
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
)

// TaskRepository определяет методы для работы с отложенными задачами.
// Строка задачи в базе - единственный источник истины о состоянии;
// реестр таймеров в памяти лишь кеширует факт "опрос запущен".
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id uint) (*entity.Task, error)
	GetByAdminAndKind(adminID uint, kind string) (*entity.Task, error)
	GetByAdmin(adminID uint) ([]entity.Task, error)
	// GetPending возвращает все незавершенные задачи.
	// Используется для восстановления поллеров после перезапуска процесса.
	GetPending() ([]entity.Task, error)
	// Reschedule атомарно сбрасывает якорь, обновляет длительность
	// и снимает флаг завершения
	Reschedule(taskID uint, value int, unit string, anchor time.Time) error
	// CompleteIfPending помечает задачу завершенной условным обновлением:
	// запись меняется только если completed=false. Возвращает true, если
	// именно этот вызов завершил задачу (закрывает гонку read-then-write).
	CompleteIfPending(taskID uint) (bool, error)
}
