package repository

import "time"

// CacheRepository определяет методы для работы с кешем (Redis).
// Используется для хранения OTP-кодов с TTL и зеркалирования
// снапшота победителей сессии.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
