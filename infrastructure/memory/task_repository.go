package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/pkg/apperrors"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]models.Task
}

func NewTaskRepository() repositories.TaskRepository {
	return &TaskRepository{tasks: make(map[uuid.UUID]models.Task)}
}

func (r *TaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) GetByOwner(_ context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if task, ok := r.tasks[taskID]; ok && task.OwnerID == ownerID {
		t := task
		return &t, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var tasks []*models.Task
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(task.Title), search) &&
			!strings.Contains(strings.ToLower(task.Description), search) {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		t := task
		tasks = append(tasks, &t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskRepository) ListCompleted(_ context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*models.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && task.Completed {
			t := task
			tasks = append(tasks, &t)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
	})
	return tasks, nil
}

func (r *TaskRepository) ListPending(_ context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*models.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && !task.Completed {
			t := task
			tasks = append(tasks, &t)
		}
	}

	// Due date ascending with undated tasks last, then newest created first.
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case a.DueDate.Equal(*b.DueDate):
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return tasks, nil
}

func (r *TaskRepository) ListDueBetween(_ context.Context, from, to time.Time) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*models.Task
	for _, task := range r.tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(from) || !task.DueDate.Before(to) {
			continue
		}
		t := task
		tasks = append(tasks, &t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(*tasks[j].DueDate)
	})
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task, ok := r.tasks[taskID]; ok && task.OwnerID == ownerID {
		delete(r.tasks, taskID)
		return nil
	}
	return apperrors.ErrNotFound
}

func (r *TaskRepository) Stats(_ context.Context, ownerID uuid.UUID, now time.Time) (*repositories.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &repositories.TaskStats{}
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
			continue
		}
		stats.Pending++
		if task.DueDate != nil && task.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	return stats, nil
}
