package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskly/domain/ports"
	"taskly/pkg/logger"
)

// Publisher publishes notification jobs to JetStream.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) ports.NotificationQueuePort {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, job *ports.NotificationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal notification job: %w", err)
	}

	ack, err := p.client.js.Publish(ctx, SubjectNotification, data)
	if err != nil {
		return fmt.Errorf("failed to publish notification job: %w", err)
	}

	logger.InfoContext(ctx, "Notification job published",
		"kind", job.Kind,
		"recipient", job.Recipient,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)

	return nil
}
