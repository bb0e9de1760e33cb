package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// FormRepo реализует repository.FormRepository
type FormRepo struct {
	db *gorm.DB
}

// NewFormRepo создает новый репозиторий форм
func NewFormRepo(db *gorm.DB) *FormRepo {
	return &FormRepo{db: db}
}

// CreateWithContent создает форму вместе с вопросами и вариантами.
// GORM сохраняет вложенные ассоциации в одной транзакции, поэтому
// частично созданных форм не бывает.
func (r *FormRepo) CreateWithContent(form *entity.Form) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(form).Error
	})
}

// GetByID возвращает форму по ID
func (r *FormRepo) GetByID(id uint) (*entity.Form, error) {
	var form entity.Form
	err := r.db.First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// GetWithContent возвращает форму вместе с вопросами и вариантами
func (r *FormRepo) GetWithContent(id uint) (*entity.Form, error) {
	var form entity.Form
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.created_at ASC")
		}).
		First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// ListByAdmin возвращает формы администратора с содержимым
func (r *FormRepo) ListByAdmin(adminID uint) ([]entity.Form, error) {
	var forms []entity.Form
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.created_at ASC")
		}).
		Where("admin_id = ?", adminID).
		Order("updated_at ASC").
		Find(&forms).Error
	return forms, err
}

// ListIDsByAdmin возвращает только идентификаторы форм администратора
func (r *FormRepo) ListIDsByAdmin(adminID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Form{}).
		Where("admin_id = ?", adminID).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteCascade удаляет форму вместе со всем зависимым содержимым.
// Порядок внутри транзакции важен: сначала ответы пользователей,
// затем варианты, вопросы и только потом сама форма - иначе
// сработают ограничения внешних ключей.
func (r *FormRepo) DeleteCascade(formID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var form entity.Form
		if err := tx.First(&form, formID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		questionIDs := tx.Model(&entity.Question{}).
			Select("id").
			Where("form_id = ?", formID)

		if err := tx.Where("question_id IN (?)", questionIDs).
			Delete(&entity.UserQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).
			Delete(&entity.UserForm{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs).
			Delete(&entity.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).
			Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Form{}, formID).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Printf("[FormRepo.DeleteCascade] Нарушение внешнего ключа при удалении формы #%d: %v", formID, err)
			return fmt.Errorf("%w: cannot delete form due to existing references", apperrors.ErrStore)
		}
		return err
	}
	return nil
}

// ResetResponses удаляет ответы пользователей на вопросы формы
// и обнуляет счетчики отметок вариантов
func (r *FormRepo) ResetResponses(formID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var form entity.Form
		if err := tx.First(&form, formID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		questionIDs := tx.Model(&entity.Question{}).
			Select("id").
			Where("form_id = ?", formID)

		if err := tx.Where("question_id IN (?)", questionIDs).
			Delete(&entity.UserQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).
			Delete(&entity.UserForm{}).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Option{}).
			Where("question_id IN (?)", questionIDs).
			Update("marked_count", 0).Error
	})
}
