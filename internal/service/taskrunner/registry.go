package taskrunner

import (
	"context"
	"sync"
)

// TaskKey - составной ключ активного таймера: администратор + вид задачи.
// Строго типизированный ключ вместо конкатенации строк.
type TaskKey struct {
	AdminID uint
	Kind    string
}

// registryEntry хранит функцию отмены вместе с токеном поколения
type registryEntry struct {
	token  uint64
	cancel context.CancelFunc
}

// Registry отображает ключ задачи на активный цикл опроса.
// Содержимое реестра - кеш факта "поллер запущен", а не источник истины:
// авторитетное состояние задачи живет в строке tasks в базе.
type Registry struct {
	mu        sync.Mutex
	active    map[TaskKey]registryEntry
	nextToken uint64
}

// NewRegistry создает пустой реестр таймеров
func NewRegistry() *Registry {
	return &Registry{
		active: make(map[TaskKey]registryEntry),
	}
}

// Register вставляет или заменяет активный таймер для ключа.
// Предыдущий цикл опроса для того же ключа останавливается до регистрации
// нового: двух одновременно работающих таймеров одной логической задачи
// не бывает. Возвращаемый токен нужен циклу, чтобы снять с учета
// именно себя, а не пришедшего на смену преемника.
func (r *Registry) Register(key TaskKey, cancel context.CancelFunc) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.active[key]; ok {
		old.cancel()
	}

	r.nextToken++
	token := r.nextToken
	r.active[key] = registryEntry{token: token, cancel: cancel}
	return token
}

// Release снимает таймер с учета, только если запись все еще принадлежит
// вызывающему циклу. Отработавший поллер, чей ключ уже перезаписан
// перепланированием, не трогает чужую запись.
func (r *Registry) Release(key TaskKey, token uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.active[key]; ok && entry.token == token {
		delete(r.active, key)
	}
}

// IsActive сообщает, есть ли запущенный цикл опроса для ключа
func (r *Registry) IsActive(key TaskKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.active[key]
	return ok
}

// StopAll останавливает все активные циклы. Используется при завершении процесса.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.active {
		entry.cancel()
		delete(r.active, key)
	}
}
