package worker

import (
	"context"
	"testing"
	"time"

	"thuchi/internal/amqp"
	"thuchi/internal/storage/memory"
)

func TestHandleEventPersistsAuditRecord(t *testing.T) {
	store := memory.New()
	w := NewAuditWorker(store)

	event := amqp.LedgerEvent{
		Type:      amqp.EventExpenseRecorded,
		UserID:    42,
		Month:     "2024-03",
		SoTien:    -50000,
		DanhMuc:   "Ăn uống",
		Timestamp: time.Now(),
	}
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle event: %v", err)
	}

	trail := store.AuditTrail()
	if len(trail) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(trail))
	}
	rec := trail[0]
	if rec.Type != event.Type || rec.UserID != event.UserID || rec.SoTien != event.SoTien {
		t.Fatalf("audit record does not match event: %+v", rec)
	}
}
