// Package smtp sends email over plain SMTP. The shape mirrors the other
// outbound adapters: a small struct satisfying a domain port.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"taskly/domain/ports"
	"taskly/pkg/config"
	"taskly/pkg/logger"
)

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) ports.MailerPort {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(ctx context.Context, email *ports.Email) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, email.To, email.Subject, email.Body)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", email.To, err)
	}

	logger.InfoContext(ctx, "Email sent", "to", email.To, "subject", email.Subject)
	return nil
}
