package serviceimpl

import (
	"context"

	"taskly/domain/ports"
	"taskly/domain/services"
	"taskly/pkg/logger"
)

// NotificationServiceImpl dispatches emails through the queue when one is
// configured, and falls back to direct fire-and-forget sends otherwise.
// Nothing here ever propagates an error into the request path.
type NotificationServiceImpl struct {
	queue  ports.NotificationQueuePort
	mailer ports.MailerPort
}

func NewNotificationService(queue ports.NotificationQueuePort, mailer ports.MailerPort) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		queue:  queue,
		mailer: mailer,
	}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, kind services.NotificationKind, recipient string, fields map[string]string) {
	job := &ports.NotificationJob{
		Kind:      string(kind),
		Recipient: recipient,
		Fields:    fields,
	}

	if s.queue != nil {
		if err := s.queue.Publish(ctx, job); err == nil {
			return
		} else {
			logger.WarnContext(ctx, "Notification enqueue failed, sending directly",
				"kind", kind, "recipient", recipient, "error", err)
		}
	}

	// Detached from the request context so an ending request does not cancel
	// the send.
	go s.Deliver(context.WithoutCancel(ctx), job)
}

// Deliver renders and sends one job. Called by the queue worker and by the
// direct fallback; failures are logged here and go no further.
func (s *NotificationServiceImpl) Deliver(ctx context.Context, job *ports.NotificationJob) {
	email := renderEmail(job)
	if email == nil {
		logger.WarnContext(ctx, "Unknown notification kind, dropping", "kind", job.Kind)
		return
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		logger.ErrorContext(ctx, "Failed to send notification email",
			"kind", job.Kind, "recipient", job.Recipient, "error", err)
		return
	}

	logger.InfoContext(ctx, "Notification delivered", "kind", job.Kind, "recipient", job.Recipient)
}
