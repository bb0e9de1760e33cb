package repository

import (
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// FormRepository определяет методы для работы с формами и их содержимым
type FormRepository interface {
	// CreateWithContent создает форму вместе с вопросами и вариантами
	// в одной транзакции (всё или ничего)
	CreateWithContent(form *entity.Form) error
	GetByID(id uint) (*entity.Form, error)
	// GetWithContent возвращает форму вместе с вопросами и вариантами
	GetWithContent(id uint) (*entity.Form, error)
	// ListByAdmin возвращает формы администратора с вопросами и вариантами,
	// упорядоченные по времени создания
	ListByAdmin(adminID uint) ([]entity.Form, error)
	// ListIDsByAdmin возвращает только идентификаторы форм администратора
	ListIDsByAdmin(adminID uint) ([]uint, error)
	// DeleteCascade удаляет форму вместе с вопросами, вариантами и
	// ответами пользователей в одной транзакции, соблюдая порядок
	// зависимостей (ответы -> варианты -> вопросы -> форма)
	DeleteCascade(formID uint) error
	// ResetResponses удаляет ответы пользователей на вопросы формы и
	// обнуляет счетчики отметок вариантов в одной транзакции
	ResetResponses(formID uint) error
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByID(id uint) (*entity.Question, error)
	UpdateText(questionID uint, text string) error
	CountByForm(formID uint) (int64, error)
}

// OptionRepository определяет методы для работы с вариантами ответа
type OptionRepository interface {
	GetByID(id uint) (*entity.Option, error)
	UpdateText(optionID uint, text string) error
	// CorrectIDsByQuestion возвращает идентификаторы вариантов,
	// помеченных правильными для данного вопроса
	CorrectIDsByQuestion(questionID uint) ([]uint, error)
}
