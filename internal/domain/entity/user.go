package entity

import (
	"time"
)

// User представляет конечного пользователя (участника опросов и викторин).
// Очки накапливаются за ответы и обнуляются задачей сброса;
// спины начисляются за полное прохождение формы.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Gender    string `gorm:"size:20;not null;default:''" json:"gender,omitempty"`
	Age       *int   `json:"age,omitempty"`
	Points    int    `gorm:"not null;default:0;index:idx_users_points" json:"points"`
	SpinsLeft int    `gorm:"not null;default:0" json:"spins_left"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
