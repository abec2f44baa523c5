package ports

import "context"

// NotificationJob is the unit of work handed to the notification queue.
type NotificationJob struct {
	Kind      string            `json:"kind"`
	Recipient string            `json:"recipient"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// NotificationQueuePort decouples notification dispatch from the request
// path. The production implementation publishes to NATS JetStream; ordering
// relative to the originating write is not guaranteed.
type NotificationQueuePort interface {
	Publish(ctx context.Context, job *NotificationJob) error
}
