package taskrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/engage-api/internal/domain/entity"
)

func TestRegistry_RegisterAndRelease(t *testing.T) {
	registry := NewRegistry()
	key := TaskKey{AdminID: 1, Kind: entity.TaskKindResetPoints}

	_, cancel := context.WithCancel(context.Background())
	token := registry.Register(key, cancel)

	assert.True(t, registry.IsActive(key))

	registry.Release(key, token)
	assert.False(t, registry.IsActive(key))
}

func TestRegistry_RegisterReplacesAndCancelsOld(t *testing.T) {
	// Перепланирование: новый таймер замещает старый, старый отменяется
	registry := NewRegistry()
	key := TaskKey{AdminID: 1, Kind: entity.TaskKindSessionWinners}

	oldCtx, oldCancel := context.WithCancel(context.Background())
	registry.Register(key, oldCancel)

	_, newCancel := context.WithCancel(context.Background())
	registry.Register(key, newCancel)

	select {
	case <-oldCtx.Done():
		// старый контекст отменен - так и должно быть
	default:
		t.Fatal("Контекст старого таймера должен быть отменен при замещении")
	}
	assert.True(t, registry.IsActive(key))
}

func TestRegistry_StaleReleaseDoesNotRemoveSuccessor(t *testing.T) {
	// Отработавший цикл не должен снимать с учета своего преемника
	registry := NewRegistry()
	key := TaskKey{AdminID: 2, Kind: entity.TaskKindResetPoints}

	_, oldCancel := context.WithCancel(context.Background())
	oldToken := registry.Register(key, oldCancel)

	_, newCancel := context.WithCancel(context.Background())
	registry.Register(key, newCancel)

	// Release со старым токеном - запись преемника остается
	registry.Release(key, oldToken)
	assert.True(t, registry.IsActive(key), "Запись преемника не должна удаляться устаревшим токеном")
}

func TestRegistry_SeparateKeysIndependent(t *testing.T) {
	// Таймеры разных администраторов и разных видов задач независимы
	registry := NewRegistry()
	keyA := TaskKey{AdminID: 1, Kind: entity.TaskKindResetPoints}
	keyB := TaskKey{AdminID: 1, Kind: entity.TaskKindSessionWinners}
	keyC := TaskKey{AdminID: 2, Kind: entity.TaskKindResetPoints}

	_, cancelA := context.WithCancel(context.Background())
	_, cancelB := context.WithCancel(context.Background())
	_, cancelC := context.WithCancel(context.Background())

	tokenA := registry.Register(keyA, cancelA)
	registry.Register(keyB, cancelB)
	registry.Register(keyC, cancelC)

	registry.Release(keyA, tokenA)

	assert.False(t, registry.IsActive(keyA))
	assert.True(t, registry.IsActive(keyB))
	assert.True(t, registry.IsActive(keyC))
}

func TestRegistry_StopAll(t *testing.T) {
	registry := NewRegistry()

	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	registry.Register(TaskKey{AdminID: 1, Kind: entity.TaskKindResetPoints}, cancel1)
	registry.Register(TaskKey{AdminID: 2, Kind: entity.TaskKindSessionWinners}, cancel2)

	registry.StopAll()

	assert.False(t, registry.IsActive(TaskKey{AdminID: 1, Kind: entity.TaskKindResetPoints}))
	assert.False(t, registry.IsActive(TaskKey{AdminID: 2, Kind: entity.TaskKindSessionWinners}))
	select {
	case <-ctx1.Done():
	default:
		t.Fatal("Первый контекст должен быть отменен")
	}
	select {
	case <-ctx2.Done():
	default:
		t.Fatal("Второй контекст должен быть отменен")
	}
}
