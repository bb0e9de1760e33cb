package entity

import "time"

// UserQuestion фиксирует, что пользователь ответил на вопрос.
// Уникальность пары (user_id, question_id) гарантирует идемпотентность:
// повторный ответ на тот же вопрос невозможен.
// CreatedAt служит временным якорем для запросов "кто отвечал после момента T".
type UserQuestion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID   uint   `gorm:"not null;uniqueIndex:idx_user_question" json:"question_id"`
	UserResponse string `gorm:"size:1000;not null;default:''" json:"user_response,omitempty"` // Свободный текстовый ответ, если разрешен

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserQuestion) TableName() string {
	return "user_questions"
}

// UserForm фиксирует полное прохождение формы пользователем.
// Уникальность пары (user_id, form_id) гарантирует, что бонус за
// завершение начисляется ровно один раз.
type UserForm struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_form" json:"user_id"`
	FormID uint `gorm:"not null;uniqueIndex:idx_user_form" json:"form_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserForm) TableName() string {
	return "user_forms"
}
