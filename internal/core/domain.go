package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// BalanceRecord is the single per-(user, month) document holding the
	// running balance. Top-ups and expenses mutate SoTien in place via
	// atomic increments; the record carries no description, which is what
	// tells it apart from expense entries in the same collection.
	BalanceRecord struct {
		UserID    int64     `bson:"user_id"`
		Month     string    `bson:"month"` // YYYY-MM
		SoTien    int64     `bson:"so_tien"`
		CreatedAt time.Time `bson:"created_at"`
	}

	// ExpenseEntry is one recorded expense. SoTien is always negative.
	ExpenseEntry struct {
		UserID    int64     `bson:"user_id"`
		Month     string    `bson:"month"`
		SoTien    int64     `bson:"so_tien"`
		MoTa      string    `bson:"mo_ta"`
		DanhMuc   string    `bson:"danh_muc"`
		CreatedAt time.Time `bson:"created_at"`
	}

	// KeywordRule maps a text fragment to a spending category.
	// Admin-managed, shared across all users.
	KeywordRule struct {
		TuKhoa  string    `bson:"tu_khoa"`
		DanhMuc string    `bson:"danh_muc"`
		NgayTao time.Time `bson:"ngay_tao"`
	}

	// Category is one of the fixed spending classifications with its
	// display glyph. Not persisted.
	Category struct {
		Name  string
		Glyph string
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrAlreadyInitialized   = errors.New("balance already initialized for this month")
	ErrNotInitialized       = errors.New("balance not initialized for this month")
	ErrDuplicateKeyword     = errors.New("keyword already exists")
	ErrKeywordNotFound      = errors.New("keyword not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidCategoryIndex = errors.New("invalid category index")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// Categories is the fixed, ordered set of spending categories. The 1-based
// position doubles as the index admins type when adding keyword rules.
var Categories = []Category{
	{Name: "Ăn uống", Glyph: "🍴"},
	{Name: "Di chuyển", Glyph: "🚗"},
	{Name: "Mua sắm", Glyph: "🛍️"},
	{Name: "Giải trí", Glyph: "🎮"},
	{Name: "Sức khỏe", Glyph: "💪"},
	{Name: "Học tập", Glyph: "📚"},
	{Name: "Làm đẹp", Glyph: "💅"},
	{Name: "Hóa đơn & Tiện ích", Glyph: "📝"},
	{Name: "Khác", Glyph: "📌"},
}

// DefaultCategory is assigned when no keyword rule matches a description.
const DefaultCategory = "Khác"

const defaultGlyph = "📌"

// CategoryByIndex returns the category at the given 1-based index.
func CategoryByIndex(i int) (Category, error) {
	if i < 1 || i > len(Categories) {
		return Category{}, ErrInvalidCategoryIndex
	}
	return Categories[i-1], nil
}

// GlyphFor returns the display glyph for a category name, falling back to
// the default glyph for unknown names.
func GlyphFor(name string) string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Glyph
		}
	}
	return defaultGlyph
}

// ValidCategory reports whether name is one of the enumerated categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// MonthKey formats a time as the YYYY-MM key used to partition ledger data.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseMonth parses user input of the form m/yyyy or mm/yyyy into a
// month key.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse("1/2006", strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return MonthKey(t), nil
}

// ParseDay parses user input of the form dd/mm/yyyy into the local midnight
// of that calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2/1/2006", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func (e ExpenseEntry) Validate() error {
	if e.SoTien >= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.MoTa) == "" {
		return errors.New("empty description")
	}
	if !ValidCategory(e.DanhMuc) {
		return errors.New("unknown category: " + e.DanhMuc)
	}
	return nil
}

func (r KeywordRule) Validate() error {
	if strings.TrimSpace(r.TuKhoa) == "" {
		return errors.New("empty keyword")
	}
	if !ValidCategory(r.DanhMuc) {
		return errors.New("unknown category: " + r.DanhMuc)
	}
	return nil
}
