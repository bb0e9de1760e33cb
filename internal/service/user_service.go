package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с конечными пользователями
type UserService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
}

// UserRegisterInput содержит данные для регистрации или входа пользователя
type UserRegisterInput struct {
	Name   string
	Email  string
	Gender string
	Age    *int
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, adminRepo repository.AdminRepository) (*UserService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for UserService")
	}
	if adminRepo == nil {
		return nil, fmt.Errorf("AdminRepository is required for UserService")
	}
	return &UserService{userRepo: userRepo, adminRepo: adminRepo}, nil
}

// RegisterOrLogin находит пользователя по email или создает нового.
// Вход под чужим email с другим именем отклоняется: имя служит
// слабой проверкой принадлежности адреса.
func (s *UserService) RegisterOrLogin(input UserRegisterInput) (*entity.User, bool, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" || input.Email == "" {
		return nil, false, fmt.Errorf("%w: name and email are required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(input.Email)
	if err == nil {
		if !strings.EqualFold(existing.Name, input.Name) {
			return nil, false, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNameMismatch)
		}
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	user := &entity.User{
		Name:   input.Name,
		Email:  input.Email,
		Gender: strings.TrimSpace(input.Gender),
		Age:    input.Age,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// GetUser возвращает пользователя по идентификатору
func (s *UserService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetAllUsers возвращает всех пользователей, отсортированных по очкам
func (s *UserService) GetAllUsers() ([]entity.User, error) {
	return s.userRepo.List()
}

// UpdatePoints изменяет очки пользователя на delta.
// Очки не уходят в минус: результат ограничивается нулем снизу.
func (s *UserService) UpdatePoints(userID uint, delta int) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Points += delta
	if user.Points < 0 {
		user.Points = 0
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SpendSpin списывает один спин пользователя
func (s *UserService) SpendSpin(userID uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.SpinsLeft <= 0 {
		return nil, fmt.Errorf("%w: no spins left", apperrors.ErrConflict)
	}

	if err := s.userRepo.AddSpins(userID, -1); err != nil {
		return nil, err
	}
	user.SpinsLeft--
	return user, nil
}

// ResetLeaderboard вручную обнуляет очки аудитории администратора.
// Действует так же, как задача reset_points, но немедленно.
func (s *UserService) ResetLeaderboard(adminID uint) (int64, error) {
	return s.userRepo.ResetPointsForAdmin(adminID)
}

// FindAdminByCode находит администратора по его уникальному коду.
// Так пользователи попадают в пространство форм конкретного администратора.
func (s *UserService) FindAdminByCode(code string) (*entity.Admin, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", apperrors.ErrValidation)
	}
	return s.adminRepo.GetByUniqueCode(code)
}

// normalizeEmail приводит email к каноническому виду
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
