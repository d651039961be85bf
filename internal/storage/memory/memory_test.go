package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"thuchi/internal/core"
)

func TestInitBalanceExactlyOncePerMonth(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.InitBalance(ctx, 1, "2024-03", 1000000); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := s.InitBalance(ctx, 1, "2024-03", 500); !errors.Is(err, core.ErrAlreadyInitialized) {
		t.Fatalf("second init expected ErrAlreadyInitialized, got %v", err)
	}
	// A different month is independent.
	if err := s.InitBalance(ctx, 1, "2024-04", 2000000); err != nil {
		t.Fatalf("next month init failed: %v", err)
	}
}

func TestAddToBalanceRequiresInit(t *testing.T) {
	s := New()
	err := s.AddToBalance(context.Background(), 7, "2024-03", 1000)
	if !errors.Is(err, core.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestBalanceInvariantOrderIndependent(t *testing.T) {
	// remaining = initial + Σ(increments) − Σ(expenses), whatever the order.
	deltas := []int64{500000, -50000, -25000, 100000, -80000}

	apply := func(order []int64) int64 {
		s := New()
		ctx := context.Background()
		if err := s.InitBalance(ctx, 1, "2024-03", 1000000); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		for _, d := range order {
			if err := s.AddToBalance(ctx, 1, "2024-03", d); err != nil {
				t.Fatalf("increment failed: %v", err)
			}
		}
		rec, err := s.Balance(ctx, 1, "2024-03")
		if err != nil {
			t.Fatalf("balance failed: %v", err)
		}
		return rec.SoTien
	}

	forward := apply(deltas)
	reversed := make([]int64, len(deltas))
	for i, d := range deltas {
		reversed[len(deltas)-1-i] = d
	}
	backward := apply(reversed)

	want := int64(1000000 + 500000 - 50000 - 25000 + 100000 - 80000)
	if forward != want || backward != want {
		t.Fatalf("expected %d in any order, got %d / %d", want, forward, backward)
	}
}

func TestExpensesNewestFirstAndScoped(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

	add := func(userID int64, month string, amount int64, at time.Time) {
		t.Helper()
		err := s.AddExpense(ctx, core.ExpenseEntry{
			UserID: userID, Month: month, SoTien: amount,
			MoTa: "x", DanhMuc: "Khác", CreatedAt: at,
		})
		if err != nil {
			t.Fatalf("add expense: %v", err)
		}
	}
	add(1, "2024-03", -100, base)
	add(1, "2024-03", -200, base.Add(time.Hour))
	add(1, "2024-04", -300, base.AddDate(0, 1, 0))
	add(2, "2024-03", -400, base)

	got, err := s.Expenses(ctx, 1, "2024-03")
	if err != nil {
		t.Fatalf("expenses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].SoTien != -200 || got[1].SoTien != -100 {
		t.Fatalf("entries must be newest first: %+v", got)
	}
}

func TestWipeDayBoundaries(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	stamps := []time.Time{
		day.Add(-time.Second),            // day before, 23:59:59
		day,                              // inclusive start
		day.Add(12 * time.Hour),          // mid-day
		day.Add(24*time.Hour - time.Second),
		day.Add(24 * time.Hour),          // next day, exclusive
	}
	for i, at := range stamps {
		err := s.AddExpense(ctx, core.ExpenseEntry{
			UserID: 1, Month: core.MonthKey(at), SoTien: int64(-(i + 1) * 100),
			MoTa: "x", DanhMuc: "Khác", CreatedAt: at,
		})
		if err != nil {
			t.Fatalf("add expense: %v", err)
		}
	}

	deleted, err := s.WipeDay(ctx, 1, day)
	if err != nil {
		t.Fatalf("wipe day: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 entries inside the day, deleted %d", deleted)
	}

	rest, err := s.Expenses(ctx, 1, "2024-03")
	if err != nil {
		t.Fatalf("expenses: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("adjacent-day entries must survive, got %+v", rest)
	}
}

func TestWipeAllCountsBalancesAndExpenses(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.InitBalance(ctx, 1, "2024-03", 1000); err != nil {
		t.Fatalf("init: %v", err)
	}
	err := s.AddExpense(ctx, core.ExpenseEntry{
		UserID: 1, Month: "2024-03", SoTien: -100,
		MoTa: "x", DanhMuc: "Khác", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := s.InitBalance(ctx, 2, "2024-03", 9999); err != nil {
		t.Fatalf("init other user: %v", err)
	}

	deleted, err := s.WipeAll(ctx, 1)
	if err != nil {
		t.Fatalf("wipe all: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted documents, got %d", deleted)
	}
	if _, err := s.Balance(ctx, 2, "2024-03"); err != nil {
		t.Fatalf("other user's data must survive: %v", err)
	}
}

func TestKeywordRules(t *testing.T) {
	s := New()
	ctx := context.Background()

	add := func(kw, cat string) {
		t.Helper()
		if err := s.Add(ctx, core.KeywordRule{TuKhoa: kw, DanhMuc: cat, NgayTao: time.Now()}); err != nil {
			t.Fatalf("add rule %q: %v", kw, err)
		}
	}
	add("cà", "Khác")
	add("cà phê", "Giải trí")
	add("xăng", "Di chuyển")

	t.Run("duplicate", func(t *testing.T) {
		err := s.Add(ctx, core.KeywordRule{TuKhoa: "xăng", DanhMuc: "Khác"})
		if !errors.Is(err, core.ErrDuplicateKeyword) {
			t.Fatalf("expected ErrDuplicateKeyword, got %v", err)
		}
	})

	t.Run("descending order", func(t *testing.T) {
		rules, err := s.AllDescending(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i := 1; i < len(rules); i++ {
			if rules[i-1].TuKhoa < rules[i].TuKhoa {
				t.Fatalf("not descending: %q before %q", rules[i-1].TuKhoa, rules[i].TuKhoa)
			}
		}
	})

	t.Run("remove returns rule", func(t *testing.T) {
		rule, err := s.Remove(ctx, "xăng")
		if err != nil || rule.DanhMuc != "Di chuyển" {
			t.Fatalf("expected removed rule, got %+v (err=%v)", rule, err)
		}
		if _, err := s.Remove(ctx, "xăng"); !errors.Is(err, core.ErrKeywordNotFound) {
			t.Fatalf("expected ErrKeywordNotFound, got %v", err)
		}
	})
}
