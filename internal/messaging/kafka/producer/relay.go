package producer

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"hr-admin/internal/messaging/kafka"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// Relay drains the lifecycle outbox into the broker. Messages are keyed by
// aggregate id so one vacation request's created/updated/deleted events stay
// ordered within a partition.
type Relay struct {
	repo   kafka.OutboxRepository
	writer *kafkago.Writer
	logger *zap.Logger
	poll   time.Duration
	batch  int
}

func NewRelay(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, poll time.Duration) *Relay {
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Relay{
		repo:   repo,
		writer: writer,
		logger: logger.Named("kafka.outbox.relay"),
		poll:   poll,
		batch:  defaultBatchSize,
	}
}

func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.poll))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			published, err := r.drainOnce(ctx)
			if err != nil {
				r.logger.Error("outbox drain failed", zap.Error(err))
				continue
			}
			if published > 0 {
				r.logger.Info("outbox drained", zap.Int("published", published))
			}
		}
	}
}

// drainOnce publishes one batch. A failed publish records the error and the
// row waits out its backoff; a failed status update leaves the row due again
// next poll, so the consumer side must tolerate duplicates.
func (r *Relay) drainOnce(ctx context.Context) (int, error) {
	events, err := r.repo.ListPublishable(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		if err := r.publish(ctx, event); err != nil {
			r.logger.Error("publish lifecycle event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("attempts", event.Attempts),
				zap.Error(err),
			)
			_ = r.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := r.repo.MarkPublished(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox published failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		published++
	}

	return published, nil
}

func (r *Relay) publish(ctx context.Context, event kafka.OutboxEvent) error {
	return r.writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	})
}
