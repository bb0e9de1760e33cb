package service

import (
	"fmt"
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// LeaderboardService собирает данные лидерборда: ранг пользователя,
// живой топ текущей сессии и сохраненный снапшот победителей
type LeaderboardService struct {
	userRepo   repository.UserRepository
	adminRepo  repository.AdminRepository
	answerRepo repository.AnswerRepository
	taskRepo   repository.TaskRepository
	topWinners int
}

// LeaderboardView - ответ лидерборда для пользователя
type LeaderboardView struct {
	// Rank - позиция пользователя среди всех по очкам, с единицы
	Rank      int `json:"rank"`
	Points    int `json:"points"`
	SpinsLeft int `json:"spins_left"`
	// SessionTop - живой топ текущей сессии (пользователи, отвечавшие
	// после якоря задачи session_winners)
	SessionTop []entity.SessionWinner `json:"session_top"`
	// LastWinners - сохраненный снапшот победителей прошлой сессии
	LastWinners entity.SessionWinnerList `json:"last_winners"`
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	answerRepo repository.AnswerRepository,
	taskRepo repository.TaskRepository,
	topWinners int,
) (*LeaderboardService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for LeaderboardService")
	}
	if adminRepo == nil {
		return nil, fmt.Errorf("AdminRepository is required for LeaderboardService")
	}
	if answerRepo == nil {
		return nil, fmt.Errorf("AnswerRepository is required for LeaderboardService")
	}
	if taskRepo == nil {
		return nil, fmt.Errorf("TaskRepository is required for LeaderboardService")
	}
	if topWinners <= 0 {
		topWinners = 3
	}
	return &LeaderboardService{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		answerRepo: answerRepo,
		taskRepo:   taskRepo,
		topWinners: topWinners,
	}, nil
}

// GetLeaderboard возвращает лидерборд глазами одного пользователя
func (s *LeaderboardService) GetLeaderboard(userID, adminID uint) (*LeaderboardView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.computeRank(userID)
	if err != nil {
		return nil, err
	}

	sessionTop, err := s.SessionTop(adminID)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}

	return &LeaderboardView{
		Rank:        rank,
		Points:      user.Points,
		SpinsLeft:   user.SpinsLeft,
		SessionTop:  sessionTop,
		LastWinners: admin.SessionWinners,
	}, nil
}

// SessionTop возвращает живой топ текущей сессии: пользователей,
// отвечавших после якоря задачи session_winners, по убыванию очков.
// Без задачи или без активности сессия считается пустой.
func (s *LeaderboardService) SessionTop(adminID uint) ([]entity.SessionWinner, error) {
	task, err := s.taskRepo.GetByAdminAndKind(adminID, entity.TaskKindSessionWinners)
	if err != nil {
		if isNotFound(err) {
			return []entity.SessionWinner{}, nil
		}
		return nil, err
	}

	return s.topSince(task.AnchorTime)
}

// SessionUsers возвращает пользователей, активных после якоря задачи.
// Используется административным просмотром текущей сессии.
func (s *LeaderboardService) SessionUsers(adminID uint, kind string) ([]entity.User, error) {
	task, err := s.taskRepo.GetByAdminAndKind(adminID, kind)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.answerRepo.DistinctUserIDsAnsweredAfter(task.AnchorTime)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []entity.User{}, nil
	}
	// Без ограничения: администратор видит всю сессию, не только топ
	return s.userRepo.TopByPoints(userIDs, len(userIDs))
}

// computeRank возвращает позицию пользователя по очкам, с единицы
func (s *LeaderboardService) computeRank(userID uint) (int, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return 0, err
	}
	for i, u := range users {
		if u.ID == userID {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: user %d is not ranked", apperrors.ErrNotFound, userID)
}

func (s *LeaderboardService) topSince(anchor time.Time) ([]entity.SessionWinner, error) {
	userIDs, err := s.answerRepo.DistinctUserIDsAnsweredAfter(anchor)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []entity.SessionWinner{}, nil
	}

	top, err := s.userRepo.TopByPoints(userIDs, s.topWinners)
	if err != nil {
		return nil, err
	}

	winners := make([]entity.SessionWinner, 0, len(top))
	for _, u := range top {
		winners = append(winners, entity.SessionWinner{Name: u.Name, Points: u.Points})
	}
	return winners, nil
}
