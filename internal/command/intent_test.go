package command

import (
	"errors"
	"testing"
)

func TestParseRecognizedPrefixes(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"nhap_tien 1000000", SetInitialBalance{SoTien: 1000000}},
		{"them_tien 500000", AddFunds{SoTien: 500000}},
		{"xem_tien", ViewBalance{}},
		{"xem_thang 03/2024", MonthlyReport{Month: "2024-03"}},
		{"xem_thang 3/2024", MonthlyReport{Month: "2024-03"}},
		{"phan_tich", Analyze{}},
		{"tong_hop", Summary{}},
		{"tk highlands 1", AddKeyword{TuKhoa: "highlands", Index: 1}},
		{"them_tu_khoa highlands 1", AddKeyword{TuKhoa: "highlands", Index: 1}},
		{"xk highlands", RemoveKeyword{TuKhoa: "highlands"}},
		{"xoa_tu_khoa trà sữa", RemoveKeyword{TuKhoa: "trà sữa"}},
		{"xoa_du_lieu xac_nhan", WipeAll{}},
		{"xoa_ngay 15/03/2024", WipeByDate{Raw: "15/03/2024"}},
		{"50k ăn sáng", RecordExpense{SoTien: 50000, MoTa: "ăn sáng"}},
		{"2tr tiền nhà", RecordExpense{SoTien: 2000000, MoTa: "tiền nhà"}},
		{"80K Xăng Xe", RecordExpense{SoTien: 80000, MoTa: "xăng xe"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestParseUsageErrors(t *testing.T) {
	cases := []string{
		"nhap_tien abc",
		"them_tien 50k x", // top-ups take a bare integer, not shorthand
		"xem_thang 2024-03",
		"xem_thang abc",
		"tk highlands",
		"tk highlands abc",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			var ue *UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("expected UsageError, got intent=%#v err=%v", got, err)
			}
			if ue.Hint == "" {
				t.Fatal("usage error must carry a hint")
			}
		})
	}
}

func TestParseSilentIgnore(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"chào bot",
		"abc ăn sáng", // amount token not parseable
		"50k",         // no description
		"1.2m trà sữa",
	}
	for _, in := range cases {
		t.Run("ignore:"+in, func(t *testing.T) {
			got, err := Parse(in)
			if got != nil || err != nil {
				t.Fatalf("expected silent ignore, got intent=%#v err=%v", got, err)
			}
		})
	}
}

func TestParseCallback(t *testing.T) {
	if got := ParseCallback("xem_tien"); got != (ViewBalance{}) {
		t.Fatalf("expected ViewBalance, got %#v", got)
	}
	if got := ParseCallback("nhap_tien"); got != (Prompt{Topic: "nhap_tien"}) {
		t.Fatalf("expected Prompt, got %#v", got)
	}
	if got := ParseCallback("quan_ly_tu_khoa"); got != (Submenu{Topic: "quan_ly_tu_khoa"}) {
		t.Fatalf("expected Submenu, got %#v", got)
	}
	if got := ParseCallback("donate"); got != (Donate{}) {
		t.Fatalf("expected Donate, got %#v", got)
	}
	if got := ParseCallback("bogus"); got != nil {
		t.Fatalf("unknown token must be ignored, got %#v", got)
	}
}

func TestAdminOnly(t *testing.T) {
	admin := []Intent{
		AddKeyword{TuKhoa: "x", Index: 1},
		ViewKeywords{},
		RemoveKeyword{TuKhoa: "x"},
		Prompt{Topic: "them_tu_khoa"},
		Prompt{Topic: "xoa_tu_khoa"},
		Submenu{Topic: "quan_ly_tu_khoa"},
	}
	for _, in := range admin {
		if !AdminOnly(in) {
			t.Fatalf("%#v must be admin only", in)
		}
	}
	open := []Intent{
		ViewBalance{},
		RecordExpense{SoTien: 1000, MoTa: "x"},
		WipeAll{},
		Prompt{Topic: "nhap_tien"},
		Submenu{Topic: "xoa_du_lieu"},
	}
	for _, in := range open {
		if AdminOnly(in) {
			t.Fatalf("%#v must not be admin only", in)
		}
	}
}
