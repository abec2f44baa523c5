package ports

import "context"

// Email is a rendered message ready for transport.
type Email struct {
	To      string
	Subject string
	Body    string
}

// MailerPort abstracts the email transport (SMTP in production, a recorder in
// tests).
type MailerPort interface {
	Send(ctx context.Context, email *Email) error
}
