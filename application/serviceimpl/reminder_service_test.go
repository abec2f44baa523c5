package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"taskly/domain/models"
	"taskly/domain/repositories"
	"taskly/domain/services"
	"taskly/infrastructure/memory"
)

type ReminderServiceSuite struct {
	suite.Suite
	service  *ReminderService
	taskRepo repositories.TaskRepository
	notifier *recordingNotifier
	ctx      context.Context
	now      time.Time
	owner    models.User
}

func TestReminderServiceSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceSuite))
}

func (s *ReminderServiceSuite) SetupTest() {
	s.taskRepo = memory.NewTaskRepository()
	s.notifier = &recordingNotifier{}
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s.owner = models.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", IsActive: true}

	s.service = NewReminderService(s.taskRepo, s.notifier, 24*time.Hour)
	s.service.now = func() time.Time { return s.now }
}

func (s *ReminderServiceSuite) addTask(title string, due *time.Time, completed bool) {
	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		DueDate:   due,
		Completed: completed,
		OwnerID:   s.owner.ID,
		Owner:     s.owner,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.Require().NoError(s.taskRepo.Create(s.ctx, task))
}

func (s *ReminderServiceSuite) TestSweepWindow() {
	inWindow := s.now.Add(6 * time.Hour)
	beyondWindow := s.now.Add(48 * time.Hour)
	alreadyPast := s.now.Add(-time.Hour)

	s.addTask("Due today", &inWindow, false)
	s.addTask("Due in two days", &beyondWindow, false)
	s.addTask("Already overdue", &alreadyPast, false)
	s.addTask("Completed but due", &inWindow, true)
	s.addTask("Undated", nil, false)

	s.service.Sweep(s.ctx)

	sent := s.notifier.all()
	s.Require().Len(sent, 1)
	s.Equal(services.NotificationTaskReminder, sent[0].Kind)
	s.Equal("alice@example.com", sent[0].Recipient)
	s.Equal("Due today", sent[0].Fields["title"])
	s.Equal(inWindow.Format(time.RFC3339), sent[0].Fields["dueDate"])
}

func (s *ReminderServiceSuite) TestSweepWithNothingDue() {
	s.service.Sweep(s.ctx)
	s.Empty(s.notifier.all())
}
