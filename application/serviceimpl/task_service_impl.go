package serviceimpl

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"taskly/domain/dto"
	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/domain/services"
	redispkg "taskly/infrastructure/redis"
	"taskly/pkg/apperrors"
	"taskly/pkg/logger"
)

const statsCacheTTL = 5 * time.Minute

// TaskServiceImpl is the ownership-scoped query layer. The caller identity
// arrives as an explicit parameter on every operation and is threaded into
// every repository call, so tasks of other users behave exactly like tasks
// that do not exist.
type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	notifier services.NotificationService
	cache    *redispkg.Client
	now      func() time.Time
}

func NewTaskService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository, notifier services.NotificationService) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// NewTaskServiceWithCache additionally caches per-owner stats in Redis.
func NewTaskServiceWithCache(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository, notifier services.NotificationService, cache *redispkg.Client) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		logger.WarnContext(ctx, "Owner not found for task creation", "owner_id", ownerID)
		return nil, apperrors.ErrNotFound
	}

	now := s.now()
	// The owner always comes from the authenticated caller. A spoofed owner
	// field in the payload never reaches this point.
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "owner_id", ownerID, "error", err)
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "owner_id", ownerID)

	fields := map[string]string{
		"username":    owner.DisplayName(),
		"title":       task.Title,
		"description": task.Description,
	}
	if task.DueDate != nil {
		fields["dueDate"] = task.DueDate.Format(time.RFC3339)
	}
	s.notifier.Notify(ctx, services.NotificationTaskCreated, owner.Email, fields)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	return s.taskRepo.GetByOwner(ctx, ownerID, taskID)
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, ownerID uuid.UUID, filter repositories.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) ListCompleted(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	return s.taskRepo.ListCompleted(ctx, ownerID)
}

func (s *TaskServiceImpl) ListPending(ctx context.Context, ownerID uuid.UUID) ([]*models.Task, error) {
	return s.taskRepo.ListPending(ctx, ownerID)
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "owner_id", ownerID)

	return task, nil
}

func (s *TaskServiceImpl) SetStatus(ctx context.Context, ownerID, taskID uuid.UUID, completed *bool) (*models.Task, error) {
	if completed == nil {
		return nil, apperrors.ErrCompletedRequired
	}

	task, err := s.taskRepo.GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = *completed
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to set task status", "task_id", taskID, "error", err)
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	logger.InfoContext(ctx, "Task status set", "task_id", taskID, "completed", *completed)

	return task, nil
}

func (s *TaskServiceImpl) ToggleTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to toggle task", "task_id", taskID, "error", err)
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)
	logger.InfoContext(ctx, "Task toggled", "task_id", taskID, "completed", task.Completed)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

func (s *TaskServiceImpl) Stats(ctx context.Context, ownerID uuid.UUID) (*dto.TaskStatsResponse, error) {
	cacheKey := statsCacheKey(ownerID)

	if s.cache != nil {
		var cached dto.TaskStatsResponse
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !redispkg.IsCacheMiss(err) {
			logger.WarnContext(ctx, "Stats cache read failed", "error", err)
		}
	}

	stats, err := s.taskRepo.Stats(ctx, ownerID, s.now())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compute task stats", "owner_id", ownerID, "error", err)
		return nil, err
	}

	resp := &dto.TaskStatsResponse{
		TotalTasks:     stats.Total,
		CompletedTasks: stats.Completed,
		PendingTasks:   stats.Pending,
		OverdueTasks:   stats.Overdue,
		CompletionRate: completionRate(stats.Completed, stats.Total),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, resp, statsCacheTTL); err != nil {
			logger.WarnContext(ctx, "Stats cache write failed", "error", err)
		}
	}

	return resp, nil
}

// completionRate is completed/total as a percentage rounded to 2 decimals,
// 0 when there are no tasks.
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

func statsCacheKey(ownerID uuid.UUID) string {
	return "stats:" + ownerID.String()
}

func (s *TaskServiceImpl) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey(ownerID)); err != nil {
		logger.WarnContext(ctx, "Stats cache invalidation failed", "owner_id", ownerID, "error", err)
	}
}
