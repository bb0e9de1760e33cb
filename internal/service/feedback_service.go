package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/domain/repository"
	apperrors "github.com/yourusername/engage-api/internal/pkg/errors"
)

// FeedbackService принимает отзывы пользователей об администраторах
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
	adminRepo    repository.AdminRepository
}

// FeedbackInput содержит данные отзыва
type FeedbackInput struct {
	UserID     uint
	AdminID    uint
	Stars      int
	Suggestion string
	AboutGame  string
	NotLiked   string
}

// NewFeedbackService создает новый сервис отзывов
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
) (*FeedbackService, error) {
	if feedbackRepo == nil {
		return nil, fmt.Errorf("FeedbackRepository is required for FeedbackService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for FeedbackService")
	}
	if adminRepo == nil {
		return nil, fmt.Errorf("AdminRepository is required for FeedbackService")
	}
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		adminRepo:    adminRepo,
	}, nil
}

// HasFeedback сообщает, оставлял ли пользователь отзыв администратору
func (s *FeedbackService) HasFeedback(userID, adminID uint) (bool, error) {
	return s.feedbackRepo.Exists(userID, adminID)
}

// Submit сохраняет отзыв. Один пользователь оставляет одному
// администратору не более одного отзыва.
func (s *FeedbackService) Submit(input FeedbackInput) (*entity.Feedback, error) {
	input.Suggestion = strings.TrimSpace(input.Suggestion)
	input.AboutGame = strings.TrimSpace(input.AboutGame)
	input.NotLiked = strings.TrimSpace(input.NotLiked)

	if input.Stars < 1 || input.Stars > 5 {
		return nil, fmt.Errorf("%w: stars must be between 1 and 5", apperrors.ErrValidation)
	}
	if input.Suggestion == "" || input.AboutGame == "" || input.NotLiked == "" {
		return nil, fmt.Errorf("%w: all feedback fields are required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByID(input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.adminRepo.GetByID(input.AdminID); err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{
		UserID:     input.UserID,
		AdminID:    input.AdminID,
		Stars:      input.Stars,
		Suggestion: input.Suggestion,
		AboutGame:  input.AboutGame,
		NotLiked:   input.NotLiked,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}
