// Package worker persists consumed ledger events into the audit trail.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"thuchi/internal/amqp"
	"thuchi/internal/storage"
)

// AuditWorker writes every ledger event it receives to the audit store.
type AuditWorker struct {
	audit storage.Audit
}

func NewAuditWorker(audit storage.Audit) *AuditWorker {
	return &AuditWorker{audit: audit}
}

// HandleEvent persists a single ledger event. Errors propagate so the AMQP
// consumer can nack and requeue the delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, event amqp.LedgerEvent) error {
	slog.DebugContext(ctx, "Processing ledger event",
		"type", event.Type,
		"user_id", event.UserID)

	rec := storage.AuditRecord{
		Type:      event.Type,
		UserID:    event.UserID,
		Month:     event.Month,
		SoTien:    event.SoTien,
		DanhMuc:   event.DanhMuc,
		Timestamp: event.Timestamp,
	}
	if err := w.audit.AppendAudit(ctx, rec); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}
