package services

import "context"

// NotificationKind identifies an email template.
type NotificationKind string

const (
	NotificationWelcome       NotificationKind = "welcome"
	NotificationTaskCreated   NotificationKind = "task-created"
	NotificationTaskReminder  NotificationKind = "task-reminder"
	NotificationPasswordReset NotificationKind = "password-reset"
)

// NotificationService dispatches emails fire-and-forget. Notify never returns
// an error to the caller: enqueue and delivery failures are logged at the
// dispatch boundary and absorbed there.
type NotificationService interface {
	Notify(ctx context.Context, kind NotificationKind, recipient string, fields map[string]string)
}
