package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// OTPService генерирует одноразовые коды подтверждения email,
// хранит их в кеше с TTL и рассылает письмами
type OTPService struct {
	cacheRepo    repository.CacheRepository
	emailService EmailService
	ttl          time.Duration
}

// NewOTPService создает новый сервис одноразовых кодов
func NewOTPService(cacheRepo repository.CacheRepository, emailService EmailService, ttl time.Duration) (*OTPService, error) {
	if cacheRepo == nil {
		return nil, fmt.Errorf("CacheRepository is required for OTPService")
	}
	if emailService == nil {
		return nil, fmt.Errorf("EmailService is required for OTPService")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{
		cacheRepo:    cacheRepo,
		emailService: emailService,
		ttl:          ttl,
	}, nil
}

// Send генерирует шестизначный код, кладет его в кеш с TTL и отправляет
// на указанный адрес. Повторный запрос перезаписывает предыдущий код.
func (s *OTPService) Send(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.cacheRepo.Set(otpCacheKey(email), code, s.ttl); err != nil {
		return err
	}

	// UUID как ключ идемпотентности: повторы внутри одной отправки
	// не приводят к дублю письма
	return s.emailService.SendOTP(ctx, email, code, uuid.NewString())
}

// Verify сверяет код с сохраненным и удаляет его при совпадении.
// Код одноразовый: успешная проверка делает его недействительным.
func (s *OTPService) Verify(email, code string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and code are required", apperrors.ErrValidation)
	}

	stored, err := s.cacheRepo.Get(otpCacheKey(email))
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidOTP)
		}
		return err
	}
	if stored != code {
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidOTP)
	}

	return s.cacheRepo.Delete(otpCacheKey(email))
}

func otpCacheKey(email string) string {
	return "otp:" + email
}

// generateOTPCode возвращает криптослучайный шестизначный код
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
