package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionWinner - один пользователь из снапшота победителей сессии
type SessionWinner struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// SessionWinnerList - пользовательский тип для хранения снапшота в JSONB
type SessionWinnerList []SessionWinner

// Scan реализует интерфейс sql.Scanner для SessionWinnerList
// Используется GORM для чтения JSONB данных из базы
func (l *SessionWinnerList) Scan(value interface{}) error {
	if value == nil {
		*l = SessionWinnerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = SessionWinnerList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для SessionWinnerList
func (l SessionWinnerList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(l)
}

// Admin представляет администратора платформы. Администратор владеет
// формами и отложенными задачами, а также хранит денормализованный
// снапшот победителей последней сессии.
type Admin struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Username       string            `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password       string            `gorm:"size:100;not null" json:"-"`
	UniqueCode     string            `gorm:"size:12;not null;uniqueIndex" json:"unique_code"` // Короткий код, по которому пользователи находят администратора
	SessionWinners SessionWinnerList `gorm:"type:jsonb;not null;default:'[]'" json:"session_winners"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Admin) TableName() string {
	return "admins"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(a.Password) > 0 && !strings.HasPrefix(a.Password, "$2a$") &&
		!strings.HasPrefix(a.Password, "$2b$") && !strings.HasPrefix(a.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[Admin.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", a.Username, err)
			return err
		}
		a.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (a *Admin) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}
