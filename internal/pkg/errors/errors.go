package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у администратора недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (повторный ответ на вопрос, занятый username, дубликат отзыва).
	ErrConflict = errors.New("resource state conflict")

	// ErrStore используется для ошибок хранилища, которые нужно показать
	// с конкретной причиной (например, нарушение внешнего ключа при удалении формы).
	ErrStore = errors.New("store operation failed")
)
