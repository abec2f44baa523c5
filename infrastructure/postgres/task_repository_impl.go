package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/pkg/apperrors"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByOwner filters by both id and owner so a foreign task is
// indistinguishable from a missing one.
func (r *TaskRepositoryImpl) GetByOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var tasks []*models.Task
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) ListCompleted(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND completed = ?", ownerID, true).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) ListPending(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND completed = ?", ownerID, false).
		Order("due_date ASC NULLS LAST").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("completed = ? AND due_date >= ? AND due_date < ?", false, from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	// Save writes all columns, so clearing description or due date sticks.
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Stats(ctx context.Context, ownerID uuid.UUID, now time.Time) (*repositories.TaskStats, error) {
	stats := &repositories.TaskStats{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Task{}).Where("owner_id = ?", ownerID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return nil, err
	}
	stats.Pending = stats.Total - stats.Completed

	err := base().
		Where("completed = ? AND due_date < ?", false, now).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
