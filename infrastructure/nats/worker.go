package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"taskly/domain/ports"
	"taskly/pkg/logger"
)

// DeliverFunc hands a dequeued job to the notification service. It must not
// return an error: delivery failures are logged and absorbed, so jobs are
// always acked and a broken mail server cannot wedge the queue.
type DeliverFunc func(ctx context.Context, job *ports.NotificationJob)

// Worker consumes the notification stream and delivers each job.
type Worker struct {
	client  *Client
	deliver DeliverFunc
	ctx     context.Context
	cancel  context.CancelFunc
	cons    jetstream.ConsumeContext
}

func NewWorker(client *Client, deliver DeliverFunc) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		client:  client,
		deliver: deliver,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (w *Worker) Start() error {
	consumer, err := w.client.stream.CreateOrUpdateConsumer(w.ctx, jetstream.ConsumerConfig{
		Durable:       ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    3,
		FilterSubject: SubjectNotification,
	})
	if err != nil {
		return err
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		var job ports.NotificationJob
		if err := json.Unmarshal(msg.Data(), &job); err != nil {
			logger.Error("Dropping malformed notification job", "error", err)
			_ = msg.Ack()
			return
		}

		w.deliver(w.ctx, &job)
		_ = msg.Ack()
	})
	if err != nil {
		return err
	}

	w.cons = cons
	logger.Info("Notification worker started", "consumer", ConsumerName)
	return nil
}

func (w *Worker) Stop() {
	if w.cons != nil {
		w.cons.Stop()
	}
	w.cancel()
	logger.Info("Notification worker stopped")
}
