package repository

import (
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// List возвращает всех пользователей, отсортированных по очкам по убыванию.
	// Используется для вычисления ранга в лидерборде.
	List() ([]entity.User, error)
	// AddSpins атомарно увеличивает количество оставшихся спинов
	AddSpins(userID uint, delta int) error
	// TopByPoints возвращает до limit пользователей из заданного множества,
	// отсортированных по очкам по убыванию
	TopByPoints(userIDs []uint, limit int) ([]entity.User, error)
	// ResetPointsForAdmin обнуляет очки только тем пользователям, которые
	// проходили формы данного администратора (join через user_forms -> forms).
	// Возвращает количество затронутых пользователей.
	ResetPointsForAdmin(adminID uint) (int64, error)
}
