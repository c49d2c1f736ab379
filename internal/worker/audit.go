// Package worker turns the record event stream into a persistent audit
// trail.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"comissoes/internal/amqp"
	"comissoes/internal/storage"
)

// AuditSink is the slice of the store the worker writes to.
type AuditSink interface {
	InsertAuditEntry(ctx context.Context, e *storage.AuditEntry) error
}

// AuditWorker consumes record events and appends them to the audit log.
type AuditWorker struct {
	sink AuditSink
}

func NewAuditWorker(sink AuditSink) *AuditWorker {
	return &AuditWorker{sink: sink}
}

// HandleEvent stores one record event. Returning an error requeues the
// delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, event *amqp.RecordEvent) error {
	entry := &storage.AuditEntry{
		Category:        event.Category,
		Action:          event.Action,
		RecordID:        event.RecordID,
		OwnerID:         event.OwnerID,
		CommissionCents: event.CommissionCents,
	}
	if err := w.sink.InsertAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	slog.InfoContext(ctx, "Audit entry recorded",
		"category", event.Category,
		"action", event.Action,
		"record_id", event.RecordID,
		"owner_id", event.OwnerID)
	return nil
}
