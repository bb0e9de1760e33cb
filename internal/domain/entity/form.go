package entity

import "time"

// Form представляет форму (викторину или опрос), принадлежащую администратору.
// Форма владеет вопросами, вопросы владеют вариантами ответа.
type Form struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AdminID  uint   `gorm:"not null;index" json:"admin_id"`
	Name     string `gorm:"size:200;not null;default:''" json:"name"`
	IsSurvey bool   `gorm:"not null;default:false" json:"is_survey"` // У опросов ответы не проверяются на правильность

	Questions []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Form) TableName() string {
	return "forms"
}

// Question представляет вопрос формы
type Question struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FormID      uint   `gorm:"not null;index" json:"form_id"`
	Text        string `gorm:"size:500;not null" json:"text"`
	Multiple    bool   `gorm:"not null;default:false" json:"multiple"`     // Разрешено несколько вариантов
	TextAllowed bool   `gorm:"not null;default:false" json:"text_allowed"` // Разрешен свободный текстовый ответ

	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Option представляет вариант ответа на вопрос
type Option struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	QuestionID  uint   `gorm:"not null;index" json:"question_id"`
	Text        string `gorm:"size:500;not null" json:"text"`
	IsCorrect   bool   `gorm:"not null;default:false" json:"-"` // Скрыто от клиента
	MarkedCount int    `gorm:"not null;default:0" json:"marked_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "options"
}
