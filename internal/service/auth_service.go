package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
	"github.com/yourusername/engage-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа администраторов
type AuthService struct {
	adminRepo   repository.AdminRepository
	jwtService  *auth.JWTService
	taskService *TaskService
}

// NewAuthService создает новый сервис аутентификации администраторов
func NewAuthService(
	adminRepo repository.AdminRepository,
	jwtService *auth.JWTService,
	taskService *TaskService,
) (*AuthService, error) {
	if adminRepo == nil {
		return nil, fmt.Errorf("AdminRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if taskService == nil {
		return nil, fmt.Errorf("TaskService is required for AuthService")
	}
	return &AuthService{
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		taskService: taskService,
	}, nil
}

// RegisterAdmin регистрирует нового администратора, выдает ему уникальный
// код для пользователей и создает задачи по умолчанию
func (s *AuthService) RegisterAdmin(username, password string) (*entity.Admin, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	admin := &entity.Admin{
		Username:       username,
		Password:       password, // хешируется хуком BeforeSave
		SessionWinners: entity.SessionWinnerList{},
	}

	// Код генерируется из UUID; при маловероятной коллизии пробуем снова.
	// Повторяется только коллизия кода - занятый username и прочие
	// ошибки возвращаются сразу.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		admin.UniqueCode = newUniqueCode()
		err = s.adminRepo.Create(admin)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) || !strings.Contains(err.Error(), "unique code") {
			return nil, "", err
		}
	}
	if err != nil {
		return nil, "", err
	}

	if err := s.taskService.EnsureDefaultTasks(admin.ID); err != nil {
		// Администратор уже создан; задачи можно поставить позже вручную
		log.Printf("[AuthService] Не удалось создать задачи по умолчанию для admin #%d: %v", admin.ID, err)
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[AuthService] Зарегистрирован администратор %s (код %s)", admin.Username, admin.UniqueCode)
	return admin, token, nil
}

// LoginAdmin проверяет учетные данные и возвращает токен доступа
func (s *AuthService) LoginAdmin(username, password string) (*entity.Admin, string, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !admin.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// GetAdmin возвращает администратора по идентификатору
func (s *AuthService) GetAdmin(adminID uint) (*entity.Admin, error) {
	return s.adminRepo.GetByID(adminID)
}

// newUniqueCode генерирует короткий код администратора из UUID
func newUniqueCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:12]
}
