package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockTx создаёт минимальный мок для передачи в BeforeSave
// В реальности BeforeSave не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestAdmin_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: создаём администратора с открытым паролем
	plainPassword := "mySecretPassword123"
	admin := &Admin{
		Username: "quizmaster",
		Password: plainPassword,
	}

	// Act: вызываем BeforeSave
	err := admin.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, admin.Password, "Пароль должен быть изменён после хеширования")
	assert.True(t, len(admin.Password) > 50, "Хеш bcrypt должен быть длиннее 50 символов")

	// Проверяем, что пароль действительно bcrypt-хеш
	err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestAdmin_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange: администратор с уже хешированным паролем
	plainPassword := "alreadyHashed"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := &Admin{
		Username: "quizmaster",
		Password: string(hashedPassword),
	}
	originalHash := admin.Password

	// Act
	err = admin.BeforeSave(mockTx)

	// Assert: пароль не должен измениться (нет двойного хеширования)
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.Equal(t, originalHash, admin.Password, "Уже хешированный пароль не должен изменяться")
}

func TestAdmin_CheckPassword(t *testing.T) {
	// Arrange
	admin := &Admin{Username: "quizmaster", Password: "correct-horse"}
	require.NoError(t, admin.BeforeSave(mockTx))

	// Act / Assert
	assert.True(t, admin.CheckPassword("correct-horse"), "Верный пароль должен проходить проверку")
	assert.False(t, admin.CheckPassword("battery-staple"), "Неверный пароль не должен проходить проверку")
}

func TestSessionWinnerList_ScanValue(t *testing.T) {
	// Arrange
	list := SessionWinnerList{
		{Name: "Аня", Points: 120},
		{Name: "Борис", Points: 90},
	}

	// Act: сериализуем и читаем обратно
	val, err := list.Value()
	require.NoError(t, err)

	var restored SessionWinnerList
	err = restored.Scan(val)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, list, restored, "Снапшот должен переживать запись и чтение из JSONB")
}

func TestSessionWinnerList_EmptyValue(t *testing.T) {
	// Пустой снапшот должен сохраняться как пустой JSON-массив, а не NULL
	var list SessionWinnerList

	val, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val)

	var restored SessionWinnerList
	require.NoError(t, restored.Scan(nil))
	assert.Empty(t, restored)
}
