package serviceimpl

import (
	"fmt"

	"taskly/domain/ports"
	"taskly/domain/services"
)

// renderEmail turns a queued job into a ready-to-send message. Returns nil
// for unknown kinds.
func renderEmail(job *ports.NotificationJob) *ports.Email {
	fields := job.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	username := fields["username"]

	switch services.NotificationKind(job.Kind) {
	case services.NotificationWelcome:
		body := "Thanks for registering!"
		if username != "" {
			body = fmt.Sprintf("Hi %s,\n\nWelcome to Taskly! Your account has been created successfully.\n\nYou can now start organizing your tasks and boost your productivity.\n\nHappy task managing!\n\nBest regards,\nTaskly Team", username)
		}
		return &ports.Email{
			To:      job.Recipient,
			Subject: "Welcome to Taskly",
			Body:    body,
		}

	case services.NotificationTaskCreated:
		body := fmt.Sprintf("Hi %s,\n\nYour new task '%s' has been successfully created.\n\n", username, fields["title"])
		if desc := fields["description"]; desc != "" {
			body += fmt.Sprintf("Description: %s\n\n", desc)
		}
		if due := fields["dueDate"]; due != "" {
			body += fmt.Sprintf("Due Date: %s\n\n", due)
		}
		body += "You can view and manage your tasks on your Taskly dashboard.\n\nBest regards,\nTaskly Team"
		return &ports.Email{
			To:      job.Recipient,
			Subject: fmt.Sprintf("New Task Created: %s", fields["title"]),
			Body:    body,
		}

	case services.NotificationTaskReminder:
		var body string
		if due := fields["dueDate"]; due != "" {
			body = fmt.Sprintf("Hi %s,\n\nThis is a reminder about your task: '%s' which is due on %s.\n\nBest regards,\nTaskly Team", username, fields["title"], due)
		} else {
			body = fmt.Sprintf("Hi %s,\n\nThis is a reminder about your task: '%s'.\n\nBest regards,\nTaskly Team", username, fields["title"])
		}
		return &ports.Email{
			To:      job.Recipient,
			Subject: fmt.Sprintf("Reminder: %s", fields["title"]),
			Body:    body,
		}

	case services.NotificationPasswordReset:
		body := fmt.Sprintf("Hi %s,\n\nYou requested a password reset. Use the token below to reset your password:\n\n%s\n\nIf you didn't request this, please ignore this email.\n\nBest regards,\nTaskly Team", username, fields["token"])
		return &ports.Email{
			To:      job.Recipient,
			Subject: "Password Reset - Taskly",
			Body:    body,
		}
	}

	return nil
}
