package repository

import (
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с ответами пользователей
// (записи user_questions и user_forms)
type AnswerRepository interface {
	// Mark в одной транзакции создает запись об ответе и увеличивает
	// marked_count выбранных вариантов. При повторном ответе на тот же
	// вопрос возвращает ErrConflict, не меняя счетчики.
	Mark(answer *entity.UserQuestion, optionIDs []uint) error
	// CountAnsweredInForm возвращает число вопросов формы, на которые
	// пользователь уже ответил
	CountAnsweredInForm(userID, formID uint) (int64, error)
	// CreateUserForm фиксирует завершение формы. Возвращает ErrConflict,
	// если запись уже существует (бонус не должен начисляться повторно).
	CreateUserForm(record *entity.UserForm) error
	// AnsweredQuestionIDs возвращает идентификаторы вопросов формы,
	// на которые пользователь уже ответил
	AnsweredQuestionIDs(userID, formID uint) ([]uint, error)
	// CompletedFormIDs возвращает идентификаторы форм, завершенных пользователем
	CompletedFormIDs(userID uint) ([]uint, error)
	// DistinctUserIDsAnsweredAfter возвращает уникальные идентификаторы
	// пользователей, ответивших хотя бы на один вопрос строго после t.
	// Якорь сессии берется из задачи session_winners.
	DistinctUserIDsAnsweredAfter(t time.Time) ([]uint, error)
}
