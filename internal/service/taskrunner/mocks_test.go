package taskrunner

import (
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов планировщика
// ============================================================================

// MockTaskRepo реализует repository.TaskRepository
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(task *entity.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepo) GetByID(id uint) (*entity.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepo) GetByAdminAndKind(adminID uint, kind string) (*entity.Task, error) {
	args := m.Called(adminID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepo) GetByAdmin(adminID uint) ([]entity.Task, error) {
	args := m.Called(adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockTaskRepo) GetPending() ([]entity.Task, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockTaskRepo) Reschedule(taskID uint, value int, unit string, anchor time.Time) error {
	args := m.Called(taskID, value, unit, anchor)
	return args.Error(0)
}

func (m *MockTaskRepo) CompleteIfPending(taskID uint) (bool, error) {
	args := m.Called(taskID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepo реализует repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) AddSpins(userID uint, delta int) error {
	args := m.Called(userID, delta)
	return args.Error(0)
}

func (m *MockUserRepo) TopByPoints(userIDs []uint, limit int) ([]entity.User, error) {
	args := m.Called(userIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) ResetPointsForAdmin(adminID uint) (int64, error) {
	args := m.Called(adminID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnswerRepo реализует repository.AnswerRepository
type MockAnswerRepo struct {
	mock.Mock
}

func (m *MockAnswerRepo) Mark(answer *entity.UserQuestion, optionIDs []uint) error {
	args := m.Called(answer, optionIDs)
	return args.Error(0)
}

func (m *MockAnswerRepo) CountAnsweredInForm(userID, formID uint) (int64, error) {
	args := m.Called(userID, formID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepo) CreateUserForm(record *entity.UserForm) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockAnswerRepo) AnsweredQuestionIDs(userID, formID uint) ([]uint, error) {
	args := m.Called(userID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAnswerRepo) CompletedFormIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockAnswerRepo) DistinctUserIDsAnsweredAfter(t time.Time) ([]uint, error) {
	args := m.Called(t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockAdminRepo реализует repository.AdminRepository
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) Create(admin *entity.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepo) GetByID(id uint) (*entity.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}

func (m *MockAdminRepo) GetByUsername(username string) (*entity.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}

func (m *MockAdminRepo) GetByUniqueCode(code string) (*entity.Admin, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}

func (m *MockAdminRepo) UpdateSessionWinners(adminID uint, winners entity.SessionWinnerList) error {
	args := m.Called(adminID, winners)
	return args.Error(0)
}
