package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/handler/dto"
	"github.com/yourusername/engage-api/internal/service"
)

// AdminHandler обрабатывает запросы администраторов: аутентификацию,
// таймеры задач, просмотр пользователей и сессий
type AdminHandler struct {
	authService        *service.AuthService
	userService        *service.UserService
	taskService        *service.TaskService
	leaderboardService *service.LeaderboardService
}

// NewAdminHandler создает новый обработчик администраторов
func NewAdminHandler(
	authService *service.AuthService,
	userService *service.UserService,
	taskService *service.TaskService,
	leaderboardService *service.LeaderboardService,
) *AdminHandler {
	return &AdminHandler{
		authService:        authService,
		userService:        userService,
		taskService:        taskService,
		leaderboardService: leaderboardService,
	}
}

// CredentialsRequest представляет запрос регистрации или входа
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// PutTimerRequest представляет запрос установки таймера задачи
type PutTimerRequest struct {
	Kind          string `json:"kind" binding:"required"`
	DurationValue int    `json:"duration_value" binding:"required"`
	DurationUnit  string `json:"duration_unit" binding:"required"`
}

// Register обрабатывает регистрацию администратора
func (h *AdminHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, token, err := h.authService.RegisterAdmin(req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"admin": dto.NewAdminResponse(admin),
		"token": token,
	})
}

// Login обрабатывает вход администратора
func (h *AdminHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, token, err := h.authService.LoginAdmin(req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": dto.NewAdminResponse(admin),
		"token": token,
	})
}

// GetAdmin возвращает профиль администратора вместе со статусами задач
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id := adminID(c)

	admin, err := h.authService.GetAdmin(id)
	if err != nil {
		handleError(c, err)
		return
	}

	statuses := make([]dto.TaskStatusResponse, 0, len(entity.AllTaskKinds()))
	for _, kind := range entity.AllTaskKinds() {
		status, err := h.taskService.GetTaskStatus(id, kind)
		if err != nil {
			// Задачи может не быть, профиль от этого не ломается
			continue
		}
		statuses = append(statuses, dto.NewTaskStatusResponse(status))
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": dto.NewAdminResponse(admin),
		"tasks": statuses,
	})
}

// GetAllUsers возвращает всех пользователей с очками и спинами
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.NewUserResponseList(users)})
}

// GetSessionUsers возвращает пользователей, активных после якоря задачи
func (h *AdminHandler) GetSessionUsers(c *gin.Context) {
	kind := c.Param("kind")
	if !entity.IsValidTaskKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task kind"})
		return
	}

	users, err := h.leaderboardService.SessionUsers(adminID(c), kind)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.NewUserResponseList(users)})
}

// PutTimer ставит или перепланирует таймер задачи
func (h *AdminHandler) PutTimer(c *gin.Context) {
	var req PutTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete task data"})
		return
	}

	task, err := h.taskService.SetOrUpdateTimer(adminID(c), req.Kind, req.DurationValue, req.DurationUnit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.NewTaskResponse(task)})
}

// GetTaskStatus возвращает статус одной задачи
func (h *AdminHandler) GetTaskStatus(c *gin.Context) {
	status, err := h.taskService.GetTaskStatus(adminID(c), c.Param("kind"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskStatusResponse(status))
}

// ResetLeaderboard вручную обнуляет очки аудитории администратора
func (h *AdminHandler) ResetLeaderboard(c *gin.Context) {
	affected, err := h.userService.ResetLeaderboard(adminID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users_reset": affected})
}
