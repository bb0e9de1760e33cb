package repository

import (
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// AdminRepository определяет методы для работы с администраторами
type AdminRepository interface {
	Create(admin *entity.Admin) error
	GetByID(id uint) (*entity.Admin, error)
	GetByUsername(username string) (*entity.Admin, error)
	GetByUniqueCode(code string) (*entity.Admin, error)
	// UpdateSessionWinners перезаписывает денормализованный снапшот победителей сессии
	UpdateSessionWinners(adminID uint, winners entity.SessionWinnerList) error
}
