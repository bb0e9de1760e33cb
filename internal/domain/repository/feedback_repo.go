package repository

import (
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// FeedbackRepository определяет методы для работы с отзывами
type FeedbackRepository interface {
	// Create сохраняет отзыв. Возвращает ErrConflict, если пользователь
	// уже оставлял отзыв этому администратору.
	Create(feedback *entity.Feedback) error
	Exists(userID, adminID uint) (bool, error)
}
