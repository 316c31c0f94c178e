package bootstrap

import (
	"context"
	"time"
)

// AuditEntry is one durable operational record: a vacation request
// lifecycle notification or a process marker such as a shutdown.
type AuditEntry struct {
	Event      string
	Message    string
	Details    map[string]any
	OccurredAt time.Time
}

// AuditSink records entries that should outlive request-scoped logs.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry)
}
