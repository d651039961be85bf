// Package storage defines the persistence ports of the bot and their
// MongoDB implementation.
package storage

import (
	"context"
	"time"

	"thuchi/internal/core"
)

// Ledger is the per-user balance and expense store. Implementations must
// make AddToBalance an atomic increment so concurrent commands from the
// same user cannot lose updates.
type Ledger interface {
	// Balance returns the month's balance record or core.ErrNotInitialized.
	Balance(ctx context.Context, userID int64, month string) (core.BalanceRecord, error)
	// InitBalance creates the month's balance record; at most one may exist
	// per (user, month). Returns core.ErrAlreadyInitialized on a second try.
	InitBalance(ctx context.Context, userID int64, month string, soTien int64) error
	// AddToBalance atomically increments the month's balance by delta
	// (negative for expenses). Returns core.ErrNotInitialized when the
	// month has no balance record.
	AddToBalance(ctx context.Context, userID int64, month string, delta int64) error
	// AddExpense appends an expense entry.
	AddExpense(ctx context.Context, e core.ExpenseEntry) error
	// Expenses returns the month's expense entries sorted by creation time
	// descending.
	Expenses(ctx context.Context, userID int64, month string) ([]core.ExpenseEntry, error)
	// WipeAll deletes every ledger document of the user and reports how
	// many went away.
	WipeAll(ctx context.Context, userID int64) (int64, error)
	// WipeDay deletes the user's entries created within [day 00:00, next
	// day 00:00) local time.
	WipeDay(ctx context.Context, userID int64, day time.Time) (int64, error)
}

// Keywords is the shared, admin-curated keyword rule store.
type Keywords interface {
	// Find returns the rule with the exact keyword or core.ErrKeywordNotFound.
	Find(ctx context.Context, tuKhoa string) (core.KeywordRule, error)
	// AllDescending returns all rules sorted by keyword descending; the
	// category resolver scans them in that order.
	AllDescending(ctx context.Context) ([]core.KeywordRule, error)
	// AllByCategory returns all rules sorted by category then keyword, for
	// the admin listing.
	AllByCategory(ctx context.Context) ([]core.KeywordRule, error)
	// Add inserts a rule; core.ErrDuplicateKeyword when the keyword exists.
	Add(ctx context.Context, rule core.KeywordRule) error
	// Remove deletes the rule and returns it, or core.ErrKeywordNotFound.
	Remove(ctx context.Context, tuKhoa string) (core.KeywordRule, error)
}

// AuditRecord is one persisted ledger event, written by the audit worker.
type AuditRecord struct {
	Type      string    `bson:"loai"`
	UserID    int64     `bson:"user_id"`
	Month     string    `bson:"month,omitempty"`
	SoTien    int64     `bson:"so_tien,omitempty"`
	DanhMuc   string    `bson:"danh_muc,omitempty"`
	Timestamp time.Time `bson:"thoi_gian"`
}

// Audit is the append-only ledger event trail.
type Audit interface {
	AppendAudit(ctx context.Context, rec AuditRecord) error
}
