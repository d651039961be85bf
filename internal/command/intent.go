// Package command turns raw message text and button-callback tokens into
// typed intents. Parsing is pure: no store access, no transport types, so
// the prefix grammar can evolve without touching handler logic.
package command

import (
	"strconv"
	"strings"

	"thuchi/internal/core"
)

// Intent is the normalized representation of an inbound command,
// independent of its original text or button form.
type Intent interface {
	intent()
}

type (
	// SetInitialBalance creates the month's balance record ("nhap_tien N").
	SetInitialBalance struct{ SoTien int64 }

	// AddFunds tops up the month's balance ("them_tien N").
	AddFunds struct{ SoTien int64 }

	// ViewBalance reports the current month's remaining balance.
	ViewBalance struct{}

	// MonthlyReport reports expenses for a specific month ("xem_thang mm/yyyy").
	MonthlyReport struct{ Month string } // YYYY-MM

	// Analyze reports the current month by category with a pie chart.
	Analyze struct{}

	// Summary is the full itemized current-month report grouped by day.
	Summary struct{}

	// AddKeyword creates a keyword rule ("tk <keyword> <1..9>"). Admin only.
	AddKeyword struct {
		TuKhoa string
		Index  int
	}

	// ViewKeywords lists all rules grouped by category. Admin only.
	ViewKeywords struct{}

	// RemoveKeyword deletes a rule ("xk <keyword>"). Admin only.
	RemoveKeyword struct{ TuKhoa string }

	// WipeAll deletes every ledger entry for the user; only reachable via
	// the exact confirmation phrase.
	WipeAll struct{}

	// WipeByDate deletes entries created on one calendar day
	// ("xoa_ngay dd/mm/yyyy"). The raw date survives so the handler can
	// reply with the dedicated bad-date message.
	WipeByDate struct{ Raw string }

	// RecordExpense is the free-text fallback "<amount> <description>".
	RecordExpense struct {
		SoTien int64 // positive; the ledger stores the negation
		MoTa   string
	}

	// Prompt asks the user to type a command in the right format; produced
	// by menu buttons that need a typed argument.
	Prompt struct{ Topic string }

	// Submenu opens a nested button menu (keyword management, data wipe).
	Submenu struct{ Topic string }

	// Donate shows the tip-jar reply.
	Donate struct{}
)

func (SetInitialBalance) intent() {}
func (AddFunds) intent()          {}
func (ViewBalance) intent()       {}
func (MonthlyReport) intent()     {}
func (Analyze) intent()           {}
func (Summary) intent()           {}
func (AddKeyword) intent()        {}
func (ViewKeywords) intent()      {}
func (RemoveKeyword) intent()     {}
func (WipeAll) intent()           {}
func (WipeByDate) intent()        {}
func (RecordExpense) intent()     {}
func (Prompt) intent()            {}
func (Submenu) intent()           {}
func (Donate) intent()            {}

// UsageError is returned when a recognized prefix has malformed arguments.
// Hint is the full user-facing reply; the dispatcher sends it back verbatim.
type UsageError struct{ Hint string }

func (e *UsageError) Error() string { return "usage: " + e.Hint }

// Usage hints, kept next to the grammar they describe.
const (
	HintNhapTien = "Vui lòng nhập đúng định dạng: nhap_tien [số tiền]"
	HintThemTien = "Vui lòng nhập đúng định dạng: them_tien [số tiền]"
	HintXemThang = "Vui lòng nhập đúng định dạng: xem_thang mm/yyyy (ví dụ: xem_thang 03/2024)"
)

// HintThemTK lists the category table below the add-keyword usage line.
func HintThemTK() string {
	var b strings.Builder
	b.WriteString("Vui lòng nhập đúng định dạng: tk [từ khóa] [số thứ tự]\n\nDanh sách danh mục:\n")
	b.WriteString(CategoryList())
	return b.String()
}

// CategoryList renders the numbered category table shown in keyword prompts.
func CategoryList() string {
	var b strings.Builder
	for i, c := range core.Categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + c.Glyph + " " + c.Name)
	}
	return b.String()
}

// Parse maps free text to an intent. It returns (nil, nil) for text that
// matches no prefix and no expense line: such messages get no reply at all.
// A recognized prefix with bad arguments yields a *UsageError.
func Parse(text string) (Intent, error) {
	text = strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.HasPrefix(text, "tk ") || strings.HasPrefix(text, "them_tu_khoa "):
		return parseAddKeyword(text)
	case strings.HasPrefix(text, "xk ") || strings.HasPrefix(text, "xoa_tu_khoa "):
		return RemoveKeyword{TuKhoa: argAfterPrefix(text)}, nil
	case strings.HasPrefix(text, "nhap_tien "):
		n, err := parsePlainAmount(text)
		if err != nil {
			return nil, &UsageError{Hint: HintNhapTien}
		}
		return SetInitialBalance{SoTien: n}, nil
	case strings.HasPrefix(text, "them_tien "):
		n, err := parsePlainAmount(text)
		if err != nil {
			return nil, &UsageError{Hint: HintThemTien}
		}
		return AddFunds{SoTien: n}, nil
	case strings.HasPrefix(text, "xem_thang "):
		month, err := core.ParseMonth(fieldAfterPrefix(text))
		if err != nil {
			return nil, &UsageError{Hint: HintXemThang}
		}
		return MonthlyReport{Month: month}, nil
	case text == "xem_tien":
		return ViewBalance{}, nil
	case text == "phan_tich":
		return Analyze{}, nil
	case text == "tong_hop":
		return Summary{}, nil
	case text == "xoa_du_lieu xac_nhan":
		return WipeAll{}, nil
	case strings.HasPrefix(text, "xoa_ngay "):
		return WipeByDate{Raw: argAfterPrefix(text)}, nil
	}

	return parseExpenseLine(text)
}

// ParseCallback maps an inline-button token to an intent. Unknown tokens
// return nil: stale keyboards are ignored, same as unrecognized free text.
func ParseCallback(token string) Intent {
	switch token {
	case "xem_tien":
		return ViewBalance{}
	case "phan_tich":
		return Analyze{}
	case "tong_hop":
		return Summary{}
	case "xem_tu_khoa":
		return ViewKeywords{}
	case "donate":
		return Donate{}
	case "nhap_tien", "them_tien", "xem_thang", "them_tu_khoa", "xoa_tu_khoa", "xoa_tat_ca", "xoa_theo_ngay":
		return Prompt{Topic: token}
	case "quan_ly_tu_khoa", "xoa_du_lieu":
		return Submenu{Topic: token}
	}
	return nil
}

// AdminOnly reports whether an intent is gated on the administrator identity.
func AdminOnly(in Intent) bool {
	switch in.(type) {
	case AddKeyword, ViewKeywords, RemoveKeyword:
		return true
	}
	switch v := in.(type) {
	case Prompt:
		return v.Topic == "them_tu_khoa" || v.Topic == "xoa_tu_khoa"
	case Submenu:
		return v.Topic == "quan_ly_tu_khoa"
	}
	return false
}

func parseAddKeyword(text string) (Intent, error) {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) != 3 {
		return nil, &UsageError{Hint: HintThemTK()}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, &UsageError{Hint: HintThemTK()}
	}
	return AddKeyword{TuKhoa: parts[1], Index: idx}, nil
}

// parsePlainAmount reads the bare-integer argument of nhap_tien/them_tien.
// Shorthand suffixes are only honored on expense lines.
func parsePlainAmount(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, core.ErrInvalidAmount
	}
	n, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, core.ErrInvalidAmount
	}
	return n, nil
}

func parseExpenseLine(text string) (Intent, error) {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return nil, nil
	}
	amount, err := core.ParseAmount(parts[0])
	if err != nil || amount <= 0 {
		// Lenient free-text policy: not an expense line, no reply.
		return nil, nil
	}
	return RecordExpense{SoTien: amount, MoTa: strings.TrimSpace(parts[1])}, nil
}

func argAfterPrefix(text string) string {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func fieldAfterPrefix(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
