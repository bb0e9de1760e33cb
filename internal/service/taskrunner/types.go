package taskrunner

import (
	"time"

	"github.com/yourusername/engage-api/internal/domain/repository"
)

// Константы значений по умолчанию
const (
	// DefaultPollInterval - интервал опроса задач.
	// Точность срабатывания - плюс-минус один интервал, для сбросов
	// лидерборда этого достаточно.
	DefaultPollInterval = time.Minute

	// DefaultTopWinners - размер снапшота победителей сессии
	DefaultTopWinners = 3
)

// Config содержит настройки планировщика отложенных задач
type Config struct {
	// PollInterval - период между проверками "наступило ли время выполнения"
	PollInterval time.Duration

	// TopWinners - сколько пользователей попадает в снапшот победителей сессии
	TopWinners int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		PollInterval: DefaultPollInterval,
		TopWinners:   DefaultTopWinners,
	}
}

// Dependencies содержит зависимости планировщика и его функций
type Dependencies struct {
	TaskRepo   repository.TaskRepository
	UserRepo   repository.UserRepository
	AnswerRepo repository.AnswerRepository
	AdminRepo  repository.AdminRepository
	// CacheRepo опционален: при наличии снапшот победителей
	// зеркалируется в кеш. nil отключает зеркалирование.
	CacheRepo repository.CacheRepository
}
