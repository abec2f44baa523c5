package serviceimpl

import (
	"context"
	"time"

	"taskly/domain/repositories"
	"taskly/domain/services"
	"taskly/pkg/logger"
	"taskly/pkg/scheduler"
)

// ReminderService sweeps for pending tasks coming due and mails their owners
// a reminder. It runs on the shared event scheduler.
type ReminderService struct {
	taskRepo repositories.TaskRepository
	notifier services.NotificationService
	window   time.Duration
	now      func() time.Time
}

func NewReminderService(taskRepo repositories.TaskRepository, notifier services.NotificationService, window time.Duration) *ReminderService {
	return &ReminderService{
		taskRepo: taskRepo,
		notifier: notifier,
		window:   window,
		now:      time.Now,
	}
}

// Schedule registers the sweep on the scheduler under the given cron
// expression.
func (s *ReminderService) Schedule(sched scheduler.EventScheduler, cronExpr string) error {
	return sched.AddJob("task-reminders", cronExpr, func() {
		s.Sweep(context.Background())
	})
}

// Sweep sends a reminder for every pending task due within the window.
// Notification failures are absorbed downstream; a repository failure only
// logs, the next run picks the tasks up again.
func (s *ReminderService) Sweep(ctx context.Context) {
	now := s.now()
	tasks, err := s.taskRepo.ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		logger.ErrorContext(ctx, "Reminder sweep failed to list due tasks", "error", err)
		return
	}

	for _, task := range tasks {
		fields := map[string]string{
			"username": task.Owner.DisplayName(),
			"title":    task.Title,
		}
		if task.DueDate != nil {
			fields["dueDate"] = task.DueDate.Format(time.RFC3339)
		}
		s.notifier.Notify(ctx, services.NotificationTaskReminder, task.Owner.Email, fields)
	}

	if len(tasks) > 0 {
		logger.InfoContext(ctx, "Reminder sweep complete", "reminders", len(tasks))
	}
}
