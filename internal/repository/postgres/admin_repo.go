package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// AdminRepo реализует repository.AdminRepository
type AdminRepo struct {
	db *gorm.DB
}

// NewAdminRepo создает новый репозиторий администраторов
func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// Create создает нового администратора. Оба уникальных индекса
// транслируются в ErrConflict, но с разными сообщениями: коллизия
// кода приглашения отличима от занятого username и может быть
// повторена с новым кодом.
func (r *AdminRepo) Create(admin *entity.Admin) error {
	if err := r.db.Create(admin).Error; err != nil {
		if isUniqueViolation(err) {
			if uniqueConstraintName(err) == "idx_admins_unique_code" {
				return fmt.Errorf("%w: unique code already taken", apperrors.ErrConflict)
			}
			return fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает администратора по ID
func (r *AdminRepo) GetByID(id uint) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.db.First(&admin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername возвращает администратора по имени пользователя
func (r *AdminRepo) GetByUsername(username string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUniqueCode возвращает администратора по короткому коду
func (r *AdminRepo) GetByUniqueCode(code string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.db.Where("unique_code = ?", code).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// UpdateSessionWinners перезаписывает снапшот победителей сессии
func (r *AdminRepo) UpdateSessionWinners(adminID uint, winners entity.SessionWinnerList) error {
	result := r.db.Model(&entity.Admin{}).
		Where("id = ?", adminID).
		Updates(map[string]interface{}{
			"session_winners": winners,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
