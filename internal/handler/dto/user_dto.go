package dto

import (
	"github.com/yourusername/engage-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для клиента
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	Age       *int   `json:"age,omitempty"`
	Points    int    `json:"points"`
	SpinsLeft int    `json:"spins_left"`
}

// NewUserResponse собирает DTO пользователя
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Gender:    user.Gender,
		Age:       user.Age,
		Points:    user.Points,
		SpinsLeft: user.SpinsLeft,
	}
}

// NewUserResponseList собирает список DTO пользователей
func NewUserResponseList(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// AdminResponse представляет администратора в формате для клиента
type AdminResponse struct {
	ID             uint                     `json:"id"`
	Username       string                   `json:"username"`
	UniqueCode     string                   `json:"unique_code"`
	SessionWinners entity.SessionWinnerList `json:"session_winners"`
}

// NewAdminResponse собирает DTO администратора
func NewAdminResponse(admin *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:             admin.ID,
		Username:       admin.Username,
		UniqueCode:     admin.UniqueCode,
		SessionWinners: admin.SessionWinners,
	}
}
