package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// FeedbackRepo реализует repository.FeedbackRepository
type FeedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo создает новый репозиторий отзывов
func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create сохраняет отзыв. Повторный отзыв той же паре (user, admin)
// транслируется в ErrConflict.
func (r *FeedbackRepo) Create(feedback *entity.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: feedback already exists for this user", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// Exists проверяет, оставлял ли пользователь отзыв этому администратору
func (r *FeedbackRepo) Exists(userID, adminID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Feedback{}).
		Where("user_id = ? AND admin_id = ?", userID, adminID).
		Count(&count).Error
	return count > 0, err
}
