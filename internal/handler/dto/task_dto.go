package dto

import (
	"time"

	"github.com/yourusername/engage-api/internal/domain/entity"
	"github.com/yourusername/engage-api/internal/service"
)

// TaskResponse представляет отложенную задачу в формате для клиента
type TaskResponse struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	DurationValue int       `json:"duration_value"`
	DurationUnit  string    `json:"duration_unit"`
	AnchorTime    time.Time `json:"anchor_time"`
	Completed     bool      `json:"completed"`
}

// NewTaskResponse собирает DTO задачи
func NewTaskResponse(task *entity.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Kind:          task.Kind,
		DurationValue: task.DurationValue,
		DurationUnit:  task.DurationUnit,
		AnchorTime:    task.AnchorTime,
		Completed:     task.Completed,
	}
}

// TaskStatusResponse представляет статус задачи со сроками
type TaskStatusResponse struct {
	TaskResponse
	ExecuteAt    time.Time `json:"execute_at"`
	SinceAnchor  string    `json:"since_anchor"`
	Remaining    string    `json:"remaining"`
	TimerRunning bool      `json:"timer_running"`
}

// NewTaskStatusResponse собирает DTO статуса задачи
func NewTaskStatusResponse(status *service.TaskStatus) TaskStatusResponse {
	return TaskStatusResponse{
		TaskResponse: NewTaskResponse(status.Task),
		ExecuteAt:    status.ExecuteAt,
		SinceAnchor:  status.SinceAnchor,
		Remaining:    status.Remaining,
		TimerRunning: status.TimerRunning,
	}
}
