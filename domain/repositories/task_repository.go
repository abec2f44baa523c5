package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskly/domain/models"
)

// TaskFilter narrows an owner-scoped listing. Search matches title or
// description case-insensitively; a nil Completed means no status filter.
type TaskFilter struct {
	Search    string
	Completed *bool
}

// TaskStats are the per-owner aggregate counts.
type TaskStats struct {
	Total     int64
	Completed int64
	Pending   int64
	Overdue   int64
}

// TaskRepository scopes every read and write to an owner. A lookup for a task
// that exists but belongs to someone else reports ErrNotFound, same as a task
// that does not exist at all.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*models.Task, error)

	// ListCompleted returns completed tasks, most recently updated first.
	ListCompleted(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error)

	// ListPending returns pending tasks ordered by due date ascending with
	// undated tasks last, tie-broken by most recently created first.
	ListPending(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error)

	// ListDueBetween returns pending tasks of all owners with a due date in
	// [from, to), with the owner preloaded. Used by the reminder sweep.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error)

	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID, now time.Time) (*TaskStats, error)
}
