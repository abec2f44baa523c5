package serviceimpl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taskly/domain/ports"
	"taskly/domain/services"
)

type NotificationServiceSuite struct {
	suite.Suite
	ctx context.Context
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *NotificationServiceSuite) waitDelivered(mailer *recordingMailer) {
	select {
	case <-mailer.delivered:
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for delivery")
	}
}

func (s *NotificationServiceSuite) TestNotifyPrefersQueue() {
	queue := &recordingQueue{}
	mailer := newRecordingMailer()
	svc := NewNotificationService(queue, mailer)

	svc.Notify(s.ctx, services.NotificationWelcome, "alice@example.com", map[string]string{"username": "alice"})

	published := queue.all()
	s.Require().Len(published, 1)
	s.Equal("welcome", published[0].Kind)
	s.Equal("alice@example.com", published[0].Recipient)
	s.Empty(mailer.all())
}

func (s *NotificationServiceSuite) TestNotifyFallsBackWhenQueueFails() {
	queue := &recordingQueue{fail: true}
	mailer := newRecordingMailer()
	svc := NewNotificationService(queue, mailer)

	svc.Notify(s.ctx, services.NotificationWelcome, "alice@example.com", map[string]string{"username": "alice"})
	s.waitDelivered(mailer)

	sent := mailer.all()
	s.Require().Len(sent, 1)
	s.Equal("alice@example.com", sent[0].To)
	s.Equal("Welcome to Taskly", sent[0].Subject)
}

func (s *NotificationServiceSuite) TestNotifySendsDirectlyWithoutQueue() {
	mailer := newRecordingMailer()
	svc := NewNotificationService(nil, mailer)

	svc.Notify(s.ctx, services.NotificationTaskCreated, "bob@example.com", map[string]string{
		"username": "bob",
		"title":    "Buy groceries",
	})
	s.waitDelivered(mailer)

	sent := mailer.all()
	s.Require().Len(sent, 1)
	s.Equal("New Task Created: Buy groceries", sent[0].Subject)
}

func (s *NotificationServiceSuite) TestDeliverAbsorbsMailerFailure() {
	mailer := newRecordingMailer()
	mailer.fail = true
	svc := NewNotificationService(nil, mailer)

	s.NotPanics(func() {
		svc.Deliver(s.ctx, &ports.NotificationJob{Kind: "welcome", Recipient: "x@example.com"})
	})
	s.Empty(mailer.all())
}

func (s *NotificationServiceSuite) TestDeliverDropsUnknownKind() {
	mailer := newRecordingMailer()
	svc := NewNotificationService(nil, mailer)

	svc.Deliver(s.ctx, &ports.NotificationJob{Kind: "no-such-template", Recipient: "x@example.com"})
	s.Empty(mailer.all())
}

func TestRenderEmail(t *testing.T) {
	tests := []struct {
		name        string
		job         ports.NotificationJob
		wantSubject string
		wantInBody  string
	}{
		{
			name:        "welcome",
			job:         ports.NotificationJob{Kind: "welcome", Recipient: "a@example.com", Fields: map[string]string{"username": "alice"}},
			wantSubject: "Welcome to Taskly",
			wantInBody:  "Hi alice",
		},
		{
			name:        "task created with due date",
			job:         ports.NotificationJob{Kind: "task-created", Recipient: "a@example.com", Fields: map[string]string{"username": "alice", "title": "Report", "dueDate": "2026-03-05T09:00:00Z"}},
			wantSubject: "New Task Created: Report",
			wantInBody:  "Due Date: 2026-03-05T09:00:00Z",
		},
		{
			name:        "reminder",
			job:         ports.NotificationJob{Kind: "task-reminder", Recipient: "a@example.com", Fields: map[string]string{"username": "alice", "title": "Report"}},
			wantSubject: "Reminder: Report",
			wantInBody:  "reminder about your task: 'Report'",
		},
		{
			name:        "password reset carries the token",
			job:         ports.NotificationJob{Kind: "password-reset", Recipient: "a@example.com", Fields: map[string]string{"username": "alice", "token": "tok123"}},
			wantSubject: "Password Reset - Taskly",
			wantInBody:  "tok123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := renderEmail(&tt.job)
			if email == nil {
				t.Fatal("renderEmail returned nil")
			}
			if email.Subject != tt.wantSubject {
				t.Fatalf("subject = %q, want %q", email.Subject, tt.wantSubject)
			}
			if !strings.Contains(email.Body, tt.wantInBody) {
				t.Fatalf("body %q does not contain %q", email.Body, tt.wantInBody)
			}
		})
	}

	t.Run("unknown kind renders nothing", func(t *testing.T) {
		if email := renderEmail(&ports.NotificationJob{Kind: "mystery"}); email != nil {
			t.Fatalf("expected nil, got %+v", email)
		}
	})
}
