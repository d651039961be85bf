// Package memory is an in-memory implementation of the storage ports, used
// in tests and as the local-development backend.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"thuchi/internal/core"
	"thuchi/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	balances map[string]*core.BalanceRecord // userID|month
	expenses []core.ExpenseEntry
	rules    map[string]core.KeywordRule // keyword
	audit    []storage.AuditRecord
}

var (
	_ storage.Ledger   = (*Store)(nil)
	_ storage.Keywords = (*Store)(nil)
	_ storage.Audit    = (*Store)(nil)
)

func New() *Store {
	return &Store{
		balances: map[string]*core.BalanceRecord{},
		rules:    map[string]core.KeywordRule{},
	}
}

func balanceKey(userID int64, month string) string {
	return strconv.FormatInt(userID, 10) + "|" + month
}

func (s *Store) Balance(_ context.Context, userID int64, month string) (core.BalanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.balances[balanceKey(userID, month)]
	if !ok {
		return core.BalanceRecord{}, core.ErrNotInitialized
	}
	return *rec, nil
}

func (s *Store) InitBalance(_ context.Context, userID int64, month string, soTien int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := balanceKey(userID, month)
	if _, ok := s.balances[key]; ok {
		return core.ErrAlreadyInitialized
	}
	s.balances[key] = &core.BalanceRecord{
		UserID:    userID,
		Month:     month,
		SoTien:    soTien,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *Store) AddToBalance(_ context.Context, userID int64, month string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.balances[balanceKey(userID, month)]
	if !ok {
		return core.ErrNotInitialized
	}
	rec.SoTien += delta
	return nil
}

func (s *Store) AddExpense(_ context.Context, e core.ExpenseEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) Expenses(_ context.Context, userID int64, month string) ([]core.ExpenseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ExpenseEntry
	for _, e := range s.expenses {
		if e.UserID == userID && e.Month == month && e.SoTien < 0 {
			out = append(out, e)
		}
	}
	// Newest first, matching the Mongo sort.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) WipeAll(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	for key, rec := range s.balances {
		if rec.UserID == userID {
			delete(s.balances, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) WipeDay(_ context.Context, userID int64, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.UserID == userID && !e.CreatedAt.Before(start) && e.CreatedAt.Before(end) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	// Balance records created that day go too, matching the Mongo filter.
	for key, rec := range s.balances {
		if rec.UserID == userID && !rec.CreatedAt.Before(start) && rec.CreatedAt.Before(end) {
			delete(s.balances, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) Find(_ context.Context, tuKhoa string) (core.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[tuKhoa]
	if !ok {
		return core.KeywordRule{}, core.ErrKeywordNotFound
	}
	return rule, nil
}

func (s *Store) AllDescending(_ context.Context) ([]core.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.ruleSlice()
	sort.Slice(out, func(i, j int) bool { return out[i].TuKhoa > out[j].TuKhoa })
	return out, nil
}

func (s *Store) AllByCategory(_ context.Context) ([]core.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.ruleSlice()
	sort.Slice(out, func(i, j int) bool {
		if out[i].DanhMuc != out[j].DanhMuc {
			return out[i].DanhMuc < out[j].DanhMuc
		}
		return out[i].TuKhoa < out[j].TuKhoa
	})
	return out, nil
}

func (s *Store) ruleSlice() []core.KeywordRule {
	out := make([]core.KeywordRule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	return out
}

func (s *Store) Add(_ context.Context, rule core.KeywordRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[rule.TuKhoa]; ok {
		return core.ErrDuplicateKeyword
	}
	s.rules[rule.TuKhoa] = rule
	return nil
}

func (s *Store) Remove(_ context.Context, tuKhoa string) (core.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[tuKhoa]
	if !ok {
		return core.KeywordRule{}, core.ErrKeywordNotFound
	}
	delete(s.rules, tuKhoa)
	return rule, nil
}

func (s *Store) AppendAudit(_ context.Context, rec storage.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, rec)
	return nil
}

// AuditTrail returns a copy of the recorded audit events, for tests.
func (s *Store) AuditTrail() []storage.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.AuditRecord(nil), s.audit...)
}
