package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	event := LedgerEvent{
		Type:      EventExpenseRecorded,
		UserID:    42,
		Month:     "2024-03",
		SoTien:    -50000,
		DanhMuc:   "Ăn uống",
		Timestamp: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != event.Type || got.UserID != event.UserID ||
		got.Month != event.Month || got.SoTien != event.SoTien ||
		got.DanhMuc != event.DanhMuc || !got.Timestamp.Equal(event.Timestamp) {
		t.Fatalf("expected %+v, got %+v", event, got)
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestNewLedgerEventStampsTime(t *testing.T) {
	before := time.Now()
	event := NewLedgerEvent(EventDataWiped, 7)
	if event.Type != EventDataWiped || event.UserID != 7 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp.Before(before) {
		t.Fatalf("timestamp not stamped: %v", event.Timestamp)
	}
}
