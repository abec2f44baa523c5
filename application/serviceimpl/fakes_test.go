package serviceimpl

import (
	"context"
	"errors"
	"sync"

	"taskly/domain/ports"
	"taskly/domain/services"
)

// recordedNotification captures one Notify call.
type recordedNotification struct {
	Kind      services.NotificationKind
	Recipient string
	Fields    map[string]string
}

// recordingNotifier stands in for the notification service so the
// user/task/reminder tests can assert on dispatched notifications without a
// mail transport.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(_ context.Context, kind services.NotificationKind, recipient string, fields map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recordedNotification{Kind: kind, Recipient: recipient, Fields: fields})
}

func (n *recordingNotifier) all() []recordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedNotification, len(n.sent))
	copy(out, n.sent)
	return out
}

// recordingMailer records sends and signals each one on a channel, so tests
// can wait for the goroutine-based direct delivery path.
type recordingMailer struct {
	mu        sync.Mutex
	sent      []ports.Email
	delivered chan struct{}
	fail      bool
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{delivered: make(chan struct{}, 16)}
}

func (m *recordingMailer) Send(_ context.Context, email *ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.delivered <- struct{}{} }()
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, *email)
	return nil
}

func (m *recordingMailer) all() []ports.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// recordingQueue records published jobs, optionally failing every publish.
type recordingQueue struct {
	mu        sync.Mutex
	published []ports.NotificationJob
	fail      bool
}

func (q *recordingQueue) Publish(_ context.Context, job *ports.NotificationJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return errors.New("queue unavailable")
	}
	q.published = append(q.published, *job)
	return nil
}

func (q *recordingQueue) all() []ports.NotificationJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]ports.NotificationJob, len(q.published))
	copy(out, q.published)
	return out
}
