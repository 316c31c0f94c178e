package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "vacation_request",
		AggregateID:   uuid.NewString(),
		EventType:     "vacation_request.created",
		Topic:         "hr.vacation_request.lifecycle.v1",
		Payload:       []byte(`{"status":"pending"}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - insert rides the caller's transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		event := pendingEvent()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO lifecycle_outbox").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		repo := NewOutboxRepository(db)
		require.NoError(t, repo.WithTx(tx).Create(ctx, event))
		require.NoError(t, tx.Commit())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - missing topic is rejected before storage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		event := pendingEvent()
		event.Topic = ""

		repo := NewOutboxRepository(db)
		assert.Error(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPublishable(t *testing.T) {
	ctx := context.Background()

	t.Run("success - pending rows plus retryable failures", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		event := pendingEvent()
		rows := sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id",
			"event_type", "topic", "payload", "status", "attempts", "last_error",
		}).AddRow(
			event.ID, event.RequestID, event.AggregateType, event.AggregateID,
			event.EventType, event.Topic, event.Payload, event.Status, 0, "",
		)

		mock.ExpectQuery("FROM lifecycle_outbox").
			WithArgs(OutboxStatusPending, OutboxStatusFailed, maxPublishAttempts, 50).
			WillReturnRows(rows)

		repo := NewOutboxRepository(db)
		events, err := repo.ListPublishable(ctx, 50)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
		assert.Equal(t, event.Topic, events[0].Topic)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()

	t.Run("success - records the reason and schedules a retry", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.NewString()
		mock.ExpectExec("UPDATE lifecycle_outbox").
			WithArgs(id, OutboxStatusFailed, "broker unreachable").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewOutboxRepository(db)
		require.NoError(t, repo.MarkFailed(ctx, id, "broker unreachable"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
