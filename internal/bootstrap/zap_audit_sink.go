package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ZapAuditSink writes audit entries through the global zap logger under a
// dedicated "audit" name so they can be routed separately downstream.
type ZapAuditSink struct {
	logger *zap.Logger
}

func NewZapAuditSink(logger ...*zap.Logger) *ZapAuditSink {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &ZapAuditSink{logger: l.Named("audit")}
}

func (s *ZapAuditSink) Record(ctx context.Context, entry AuditEntry) {
	occurredAt := entry.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	s.logger.Info(entry.Message,
		zap.String("event", entry.Event),
		zap.Time("occurred_at", occurredAt),
		zap.Any("details", entry.Details),
	)
}
