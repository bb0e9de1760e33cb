package entity

import "time"

// Feedback представляет отзыв пользователя об игре у конкретного администратора.
// Уникальность пары (user_id, admin_id): один отзыв от пользователя.
type Feedback struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_feedback_user_admin" json:"user_id"`
	AdminID    uint   `gorm:"not null;uniqueIndex:idx_feedback_user_admin" json:"admin_id"`
	Stars      int    `gorm:"not null" json:"stars"`
	Suggestion string `gorm:"size:1000;not null" json:"suggestion"`
	AboutGame  string `gorm:"size:1000;not null" json:"about_game"`
	NotLiked   string `gorm:"size:1000;not null" json:"not_liked"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Feedback) TableName() string {
	return "feedbacks"
}
