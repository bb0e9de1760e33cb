package service

import (
	"errors"

	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// Ошибки бизнес-логики сервисного слоя
var (
	// ErrNameMismatch возвращается при входе по email с именем,
	// не совпадающим с сохраненным
	ErrNameMismatch = errors.New("name does not match registered account")

	// ErrFormAccessDenied возвращается при попытке администратора
	// работать с чужой формой
	ErrFormAccessDenied = errors.New("form belongs to another admin")

	// ErrInvalidOTP возвращается при неверном или истекшем коде подтверждения
	ErrInvalidOTP = errors.New("invalid or expired verification code")
)

// isNotFound сокращает проверки errors.Is(err, apperrors.ErrNotFound)
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// isConflict сокращает проверки errors.Is(err, apperrors.ErrConflict)
func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}
