package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Mark создает запись об ответе и увеличивает счетчики выбранных вариантов
// в одной транзакции. Уникальный индекс (user_id, question_id) гарантирует,
// что при повторном ответе транзакция откатится целиком и счетчики
// останутся нетронутыми.
func (r *AnswerRepo) Mark(answer *entity.UserQuestion, optionIDs []uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Option{}).
			Where("id IN ?", optionIDs).
			UpdateColumn("marked_count", gorm.Expr("marked_count + ?", 1)).
			Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: question already marked by user", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// CountAnsweredInForm возвращает число отвеченных вопросов формы
func (r *AnswerRepo) CountAnsweredInForm(userID, formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserQuestion{}).
		Joins("JOIN questions ON questions.id = user_questions.question_id").
		Where("user_questions.user_id = ? AND questions.form_id = ?", userID, formID).
		Count(&count).Error
	return count, err
}

// CreateUserForm фиксирует завершение формы пользователем
func (r *AnswerRepo) CreateUserForm(record *entity.UserForm) error {
	if err := r.db.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: form already completed by user", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// AnsweredQuestionIDs возвращает идентификаторы отвеченных вопросов формы
func (r *AnswerRepo) AnsweredQuestionIDs(userID, formID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.UserQuestion{}).
		Joins("JOIN questions ON questions.id = user_questions.question_id").
		Where("user_questions.user_id = ? AND questions.form_id = ?", userID, formID).
		Pluck("user_questions.question_id", &ids).Error
	return ids, err
}

// CompletedFormIDs возвращает идентификаторы завершенных пользователем форм
func (r *AnswerRepo) CompletedFormIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.UserForm{}).
		Where("user_id = ?", userID).
		Pluck("form_id", &ids).Error
	return ids, err
}

// DistinctUserIDsAnsweredAfter возвращает уникальные ID пользователей,
// ответивших хотя бы на один вопрос строго после t
func (r *AnswerRepo) DistinctUserIDsAnsweredAfter(t time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.UserQuestion{}).
		Distinct("user_id").
		Where("created_at > ?", t).
		Pluck("user_id", &ids).Error
	return ids, err
}
