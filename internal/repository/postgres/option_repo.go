package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// OptionRepo реализует repository.OptionRepository
type OptionRepo struct {
	db *gorm.DB
}

// NewOptionRepo создает новый репозиторий вариантов ответа
func NewOptionRepo(db *gorm.DB) *OptionRepo {
	return &OptionRepo{db: db}
}

// GetByID возвращает вариант по ID
func (r *OptionRepo) GetByID(id uint) (*entity.Option, error) {
	var option entity.Option
	err := r.db.First(&option, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &option, nil
}

// UpdateText обновляет текст варианта
func (r *OptionRepo) UpdateText(optionID uint, text string) error {
	result := r.db.Model(&entity.Option{}).
		Where("id = ?", optionID).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CorrectIDsByQuestion возвращает идентификаторы правильных вариантов вопроса
func (r *OptionRepo) CorrectIDsByQuestion(questionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Option{}).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Pluck("id", &ids).Error
	return ids, err
}
