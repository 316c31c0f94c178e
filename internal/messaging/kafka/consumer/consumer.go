package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"hr-admin/internal/bootstrap"
	"hr-admin/internal/events"
)

// ConsumeVacationLifecycle turns vacation request lifecycle events into
// audit notifications. Decode failures commit and skip; transient failures
// leave the message uncommitted for redelivery.
func ConsumeVacationLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	audit bootstrap.AuditSink,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.vacation_lifecycle")
	log.Info("vacation lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("vacation lifecycle consumer stopped")
				return
			}
			log.Error("fetch vacation lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.VacationRequestEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode vacation lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Record(ctx, bootstrap.AuditEntry{
			Event:   event.EventType,
			Message: "vacation request lifecycle notification",
			Details: map[string]any{
				"request_id":          event.RequestID,
				"vacation_request_id": event.VacationRequestID,
				"employee_id":         event.EmployeeID,
				"status":              event.Status,
			},
			OccurredAt: event.OccurredAt,
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit vacation lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("vacation lifecycle event processed",
			zap.String("event_type", event.EventType),
			zap.String("vacation_request_id", event.VacationRequestID),
		)
	}
}
