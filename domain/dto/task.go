package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"dueDate" validate:"omitempty"`
	Completed   bool       `json:"completed"`
}

// UpdateTaskRequest uses pointers so that absent fields keep their previous
// values on partial updates. An owner field in the payload is ignored.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"dueDate" validate:"omitempty"`
	Completed   *bool      `json:"completed"`
}

type UpdateTaskStatusRequest struct {
	Completed *bool `json:"completed"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type TaskStatsResponse struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	PendingTasks   int64   `json:"pending_tasks"`
	OverdueTasks   int64   `json:"overdue_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}
