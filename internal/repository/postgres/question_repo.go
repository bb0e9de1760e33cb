package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// UpdateText обновляет текст вопроса
func (r *QuestionRepo) UpdateText(questionID uint, text string) error {
	result := r.db.Model(&entity.Question{}).
		Where("id = ?", questionID).
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

// CountByForm возвращает количество вопросов формы
func (r *QuestionRepo) CountByForm(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	return count, err
}
