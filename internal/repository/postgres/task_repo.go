package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// TaskRepo реализует repository.TaskRepository
type TaskRepo struct {
	db *gorm.DB
}

// NewTaskRepo создает новый репозиторий отложенных задач
func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create создает новую задачу. Инвариант "одна задача на пару (admin, kind)"
// обеспечивается уникальным индексом.
func (r *TaskRepo) Create(task *entity.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: task already exists for this admin and kind", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает задачу по ID
func (r *TaskRepo) GetByID(id uint) (*entity.Task, error) {
	var task entity.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetByAdminAndKind возвращает задачу администратора заданного вида
func (r *TaskRepo) GetByAdminAndKind(adminID uint, kind string) (*entity.Task, error) {
	var task entity.Task
	err := r.db.Where("admin_id = ? AND kind = ?", adminID, kind).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetByAdmin возвращает все задачи администратора
func (r *TaskRepo) GetByAdmin(adminID uint) ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.Where("admin_id = ?", adminID).Order("kind").Find(&tasks).Error
	return tasks, err
}

// GetPending возвращает все незавершенные задачи для восстановления после рестарта
func (r *TaskRepo) GetPending() ([]entity.Task, error) {
	var tasks []entity.Task
	err := r.db.Where("completed = ?", false).Find(&tasks).Error
	return tasks, err
}

// Reschedule сбрасывает якорь задачи, обновляет длительность и снимает флаг завершения
func (r *TaskRepo) Reschedule(taskID uint, value int, unit string, anchor time.Time) error {
	result := r.db.Model(&entity.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"duration_value": value,
			"duration_unit":  unit,
			"anchor_time":    anchor,
			"completed":      false,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CompleteIfPending условно помечает задачу завершенной.
// Обновление проходит только если completed=false, поэтому два
// конкурирующих поллера не могут завершить один цикл дважды.
func (r *TaskRepo) CompleteIfPending(taskID uint) (bool, error) {
	result := r.db.Model(&entity.Task{}).
		Where("id = ? AND completed = ?", taskID, false).
		Updates(map[string]interface{}{
			"completed":  true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
