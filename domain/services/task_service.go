package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskly/domain/dto"
	"taskly/domain/models"
	"taskly/domain/repositories"
)

// TaskService is the ownership-scoped view over tasks. Every operation takes
// the caller identity explicitly; no task is ever returned or altered for a
// non-owning caller.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error)
	ListCompleted(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error)
	ListPending(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	SetStatus(ctx context.Context, ownerID, taskID uuid.UUID, completed *bool) (*models.Task, error)
	ToggleTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (*dto.TaskStatsResponse, error)
}

// ParseCompletedFilter interprets the textual completed query parameter:
// "true", "1" and "yes" mean completed, any other value means pending.
func ParseCompletedFilter(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
