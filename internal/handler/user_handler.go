package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/engage-api/internal/handler/dto"
	"github.com/yourusername/engage-api/internal/service"
)

// UserHandler обрабатывает запросы конечных пользователей
type UserHandler struct {
	userService        *service.UserService
	formService        *service.FormService
	answerService      *service.AnswerService
	leaderboardService *service.LeaderboardService
	feedbackService    *service.FeedbackService
	otpService         *service.OTPService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(
	userService *service.UserService,
	formService *service.FormService,
	answerService *service.AnswerService,
	leaderboardService *service.LeaderboardService,
	feedbackService *service.FeedbackService,
	otpService *service.OTPService,
) *UserHandler {
	return &UserHandler{
		userService:        userService,
		formService:        formService,
		answerService:      answerService,
		leaderboardService: leaderboardService,
		feedbackService:    feedbackService,
		otpService:         otpService,
	}
}

// AuthRequest представляет запрос регистрации или входа пользователя
type AuthRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Gender string `json:"gender"`
	Age    *int   `json:"age"`
}

// UpdatePointsRequest представляет запрос изменения очков
type UpdatePointsRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// MarkRequest представляет ответ пользователя на вопрос
type MarkRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	OptionIDs  []uint `json:"option_ids"`
	Text       string `json:"text"`
}

// FeedbackRequest представляет отзыв пользователя
type FeedbackRequest struct {
	AdminID    uint   `json:"admin_id" binding:"required"`
	Stars      int    `json:"stars" binding:"required,min=1,max=5"`
	Suggestion string `json:"suggestion" binding:"required"`
	AboutGame  string `json:"about_game" binding:"required"`
	NotLiked   string `json:"not_liked" binding:"required"`
}

// OTPRequest представляет запрос отправки кода подтверждения
type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPVerifyRequest представляет запрос проверки кода
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// Auth регистрирует пользователя или возвращает существующего по email
func (h *UserHandler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.userService.RegisterOrLogin(service.UserRegisterInput{
		Name:   req.Name,
		Email:  req.Email,
		Gender: req.Gender,
		Age:    req.Age,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"user": dto.NewUserResponse(user), "created": created})
}

// FindAdmin находит администратора по уникальному коду
func (h *UserHandler) FindAdmin(c *gin.Context) {
	admin, err := h.userService.FindAdminByCode(c.Param("uniqueCode"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"admin_id": admin.ID,
		"username": admin.Username,
	})
}

// UpdatePoints изменяет очки пользователя на дельту
func (h *UserHandler) UpdatePoints(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req UpdatePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdatePoints(userID, req.Delta)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SpendSpin списывает один спин
func (h *UserHandler) SpendSpin(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := h.userService.SpendSpin(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Leaderboard возвращает лидерборд глазами пользователя
func (h *UserHandler) Leaderboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	adminIDParam, err := strconv.ParseUint(c.Query("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admin_id query parameter is required"})
		return
	}

	view, err := h.leaderboardService.GetLeaderboard(userID, uint(adminIDParam))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SendOTP отправляет код подтверждения на email
func (h *UserHandler) SendOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpService.Send(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "otp sent"})
}

// VerifyOTP проверяет код подтверждения
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpService.Verify(req.Email, req.Code); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "otp verified"})
}

// GetFormIDs возвращает идентификаторы незавершенных пользователем форм
func (h *UserHandler) GetFormIDs(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	adminIDParam, err := strconv.ParseUint(c.Query("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admin_id query parameter is required"})
		return
	}

	ids, err := h.formService.UncompletedFormIDs(userID, uint(adminIDParam))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form_ids": ids})
}

// GetForm возвращает форму с еще не отвеченными вопросами
func (h *UserHandler) GetForm(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	formIDParam, err := strconv.ParseUint(c.Query("form_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form_id query parameter is required"})
		return
	}

	form, err := h.formService.FormForUser(userID, uint(formIDParam))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFormResponse(form, true, false))
}

// Mark фиксирует ответ пользователя и возвращает итог проверки
func (h *UserHandler) Mark(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.answerService.Mark(service.MarkInput{
		UserID:     userID,
		QuestionID: req.QuestionID,
		OptionIDs:  req.OptionIDs,
		Text:       req.Text,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Feedback сохраняет отзыв пользователя
func (h *UserHandler) Feedback(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.Submit(service.FeedbackInput{
		UserID:     userID,
		AdminID:    req.AdminID,
		Stars:      req.Stars,
		Suggestion: req.Suggestion,
		AboutGame:  req.AboutGame,
		NotLiked:   req.NotLiked,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

// CheckFeedback сообщает, оставлял ли пользователь отзыв администратору
func (h *UserHandler) CheckFeedback(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	adminIDParam, err := strconv.ParseUint(c.Query("admin_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admin_id query parameter is required"})
		return
	}

	exists, err := h.feedbackService.HasFeedback(userID, uint(adminIDParam))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback_given": exists})
}
