package kafka

import (
	"context"
	"database/sql"
	"errors"
)

const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	OutboxStatusFailed    = "failed"
)

// maxPublishAttempts caps redelivery of a failed row; beyond it the row
// stays failed for manual inspection instead of looping forever.
const maxPublishAttempts = 8

// OutboxEvent is one queued lifecycle notification. It is written in the
// same transaction as the entity change it describes and relayed to the
// broker by the publisher worker.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	Attempts      int
	LastError     string
}

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPublishable(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

// Create appends the event. Callers pass the transaction that carries the
// entity write; a malformed event is rejected before touching storage.
func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if event.ID == "" || event.Topic == "" {
		return errors.New("outbox event needs an id and a topic")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox event needs a payload")
	}

	query := `
INSERT INTO lifecycle_outbox (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.execer().ExecContext(
		ctx, query,
		event.ID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPublishable returns rows due for delivery in creation order: fresh
// pending rows plus failed rows whose backoff has elapsed and that still
// have attempts left.
func (r *outboxRepository) ListPublishable(ctx context.Context, limit int) ([]OutboxEvent, error) {
	query := `
SELECT
	id::text,
	request_id,
	aggregate_type,
	aggregate_id::text,
	event_type,
	topic,
	payload,
	status,
	attempts,
	COALESCE(last_error, '')
FROM lifecycle_outbox
WHERE (status = $1 OR (status = $2 AND attempts < $3 AND next_attempt_at <= NOW()))
ORDER BY created_at ASC
LIMIT $4
`
	rows, err := r.db.QueryContext(ctx, query,
		OutboxStatusPending, OutboxStatusFailed, maxPublishAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.Attempts,
			&e.LastError,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id string) error {
	query := `
UPDATE lifecycle_outbox
SET status = $2, published_at = NOW(), last_error = NULL
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusPublished)
	return err
}

// MarkFailed records the delivery error and schedules the next attempt with
// a linear backoff keyed to the attempt count.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
UPDATE lifecycle_outbox
SET
	status = $2,
	attempts = attempts + 1,
	last_error = LEFT($3, 500),
	next_attempt_at = NOW() + ((attempts + 1) * INTERVAL '30 seconds')
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason)
	return err
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
