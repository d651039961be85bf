package core

import (
	"errors"
	"testing"
	"time"
)

func TestCategoryByIndex(t *testing.T) {
	first, err := CategoryByIndex(1)
	if err != nil || first.Name != "Ăn uống" {
		t.Fatalf("index 1 expected Ăn uống, got %+v (err=%v)", first, err)
	}
	last, err := CategoryByIndex(9)
	if err != nil || last.Name != "Khác" {
		t.Fatalf("index 9 expected Khác, got %+v (err=%v)", last, err)
	}
	for _, i := range []int{0, 10, -1} {
		if _, err := CategoryByIndex(i); !errors.Is(err, ErrInvalidCategoryIndex) {
			t.Fatalf("index %d expected ErrInvalidCategoryIndex, got %v", i, err)
		}
	}
}

func TestGlyphFor(t *testing.T) {
	if g := GlyphFor("Ăn uống"); g != "🍴" {
		t.Fatalf("unexpected glyph %q", g)
	}
	if g := GlyphFor("không tồn tại"); g != "📌" {
		t.Fatalf("unknown category must use default glyph, got %q", g)
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"03/2024", "2024-03", true},
		{"3/2024", "2024-03", true},
		{"12/2023", "2023-12", true},
		{"13/2024", "", false},
		{"2024-03", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMonth(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.out, got, err)
			}
		} else if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("%q expected ErrInvalidDateFormat, got %v", tc.in, err)
		}
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("15/03/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := ParseDay("2024-03-15"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestExpenseEntryValidate(t *testing.T) {
	ok := ExpenseEntry{SoTien: -1000, MoTa: "ăn sáng", DanhMuc: "Ăn uống"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	bad := ok
	bad.SoTien = 1000
	if err := bad.Validate(); err == nil {
		t.Fatal("positive amount must be rejected")
	}
	bad = ok
	bad.MoTa = "  "
	if err := bad.Validate(); err == nil {
		t.Fatal("empty description must be rejected")
	}
	bad = ok
	bad.DanhMuc = "nope"
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown category must be rejected")
	}
}
