package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/engage-api/internal/domain/entity"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update обновляет информацию о пользователе
func (r *UserRepo) Update(user *entity.User) error {
	return r.db.Save(user).Error
}

// List возвращает всех пользователей по убыванию очков.
// ID в сортировке даёт стабильный порядок при равных очках.
func (r *UserRepo) List() ([]entity.User, error) {
	var users []entity.User
	err := r.db.Order("points DESC, id ASC").Find(&users).Error
	return users, err
}

// AddSpins атомарно увеличивает spins_left через gorm.Expr
func (r *UserRepo) AddSpins(userID uint, delta int) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("spins_left", gorm.Expr("spins_left + ?", delta)).
		Error
}

// TopByPoints возвращает до limit пользователей из заданного множества по убыванию очков
func (r *UserRepo) TopByPoints(userIDs []uint, limit int) ([]entity.User, error) {
	if len(userIDs) == 0 {
		return []entity.User{}, nil
	}
	var users []entity.User
	err := r.db.Where("id IN ?", userIDs).
		Order("points DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ResetPointsForAdmin обнуляет очки пользователей, проходивших формы
// данного администратора. Сброс строго ограничен аудиторией администратора:
// пользователи чужих форм не затрагиваются.
func (r *UserRepo) ResetPointsForAdmin(adminID uint) (int64, error) {
	result := r.db.Model(&entity.User{}).
		Where("id IN (?)", r.db.Model(&entity.UserForm{}).
			Select("user_forms.user_id").
			Joins("JOIN forms ON forms.id = user_forms.form_id").
			Where("forms.admin_id = ?", adminID)).
		Update("points", 0)
	if result.Error != nil {
		log.Printf("[UserRepo.ResetPointsForAdmin] Ошибка при сбросе очков для admin=%d: %v", adminID, result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
