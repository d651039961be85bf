package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event types published after successful mutations.
const (
	EventBalanceInitialized = "balance_initialized"
	EventFundsAdded         = "funds_added"
	EventExpenseRecorded    = "expense_recorded"
	EventDataWiped          = "data_wiped"
)

// LedgerEvent describes one ledger mutation. Consumers (the audit worker)
// persist these; the bot never reads them back.
type LedgerEvent struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id"`
	Month     string    `json:"month,omitempty"`
	SoTien    int64     `json:"so_tien,omitempty"`
	DanhMuc   string    `json:"danh_muc,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent stamps an event with the current time.
func NewLedgerEvent(eventType string, userID int64) LedgerEvent {
	return LedgerEvent{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return LedgerEvent{}, err
	}
	return e, nil
}
