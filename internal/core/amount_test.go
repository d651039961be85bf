package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"50000", 50000, true},
		{"50k", 50000, true},
		{"50K", 50000, true},
		{"2tr", 2000000, true},
		{"2m", 2000000, true},
		{" 80k ", 80000, true},
		{"0", 0, true},
		{"-50", -50, true}, // plain integer literal, sign allowed
		{"1.2m", 0, false}, // decimal shorthand is not supported
		{"1,2tr", 0, false},
		{"abc", 0, false},
		{"k", 0, false},
		{"tr", 0, false},
		{"", 0, false},
		{"50kk", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
			}
		}
	}
}
