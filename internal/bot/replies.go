package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"thuchi/internal/command"
	"thuchi/internal/core"
)

// MenuKind selects which inline keyboard a reply carries.
type MenuKind int

const (
	MenuNone MenuKind = iota
	MenuMain
	MenuKeywords
	MenuWipe
)

// Reply is one outbound message. Text-only unless Photo/PhotoURL is set.
type Reply struct {
	Text      string
	Photo     []byte
	PhotoName string
	PhotoURL  string
	Caption   string
	Menu      MenuKind
}

// telegramMessageLimit is where long keyword listings get split.
const telegramMessageLimit = 4000

// FormatVND renders an amount with thousand separators and the currency
// suffix, e.g. 1000000 -> "1,000,000đ".
func FormatVND(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	s := b.String() + "đ"
	if neg {
		return "-" + s
	}
	return s
}

const welcomeText = "Chào mừng bạn đến với bot quản lý thu chi! 👋\n\n" +
	"💡 Cách sử dụng:\n" +
	"• Nhập chi tiêu: 50k ăn sáng\n" +
	"• Định dạng số tiền: 50k hoặc 1.2m\n" +
	"• Ví dụ: 80k xăng, 25k trà sữa, 2.5m tiền nhà\n\n" +
	"Vui lòng chọn chức năng:"

const (
	menuText        = "📋 Menu chức năng:"
	msgNotInit      = "❌ Bạn chưa nhập số tiền ban đầu cho tháng này!"
	msgAlreadyInit  = "❌ Bạn đã nhập số tiền ban đầu cho tháng này rồi!"
	msgNoPermission = "❌ Bạn không có quyền sử dụng chức năng này!"
	msgStoreFailure = "❌ Có lỗi xảy ra, vui lòng thử lại sau!"
	msgNoKeywords   = "❌ Chưa có từ khóa nào được thêm vào!"
	msgNothingWiped = "❌ Không có dữ liệu nào để xóa!"
	msgBadDate      = "❌ Định dạng ngày không hợp lệ. Vui lòng sử dụng định dạng DD/MM/YYYY"
)

const donateCaption = "☕️ Cảm ơn bạn đã sử dụng bot!\n\n" +
	"Nếu bạn thấy bot hữu ích, hãy ủng hộ mình một ly cà phê nhé!\n" +
	"Mọi đóng góp của bạn sẽ giúp mình có thêm động lực phát triển bot tốt hơn.\n\n" +
	"🙏 Cảm ơn sự ủng hộ của bạn!"

const donateQRURL = "https://img.vietqr.io/image/TCB-19073419928011-print.png"

// promptTexts map button tokens to the instruction shown when the command
// needs a typed argument.
var promptTexts = map[string]string{
	"nhap_tien": "Vui lòng nhập số tiền ban đầu theo định dạng:\n" +
		"nhap_tien [số tiền]\nVí dụ: nhap_tien 1000000",
	"them_tien": "Vui lòng nhập số tiền thêm vào theo định dạng:\n" +
		"them_tien [số tiền]\nVí dụ: them_tien 500000",
	"xem_thang": "Vui lòng nhập tháng năm cần xem theo định dạng:\n" +
		"xem_thang [mm/yyyy]\nVí dụ: xem_thang 03/2024 hoặc xem_thang 3/2024",
	"xoa_tu_khoa": "Vui lòng nhập từ khóa cần xóa theo định dạng:\n" +
		"xk [từ khóa]\nVí dụ: xk highlands",
	"xoa_tat_ca": "⚠️ Bạn có chắc chắn muốn xóa toàn bộ dữ liệu chi tiêu của mình?\n" +
		"Hành động này không thể hoàn tác!\n\n" +
		"Nhập \"xoa_du_lieu xac_nhan\" để xác nhận xóa.",
	"xoa_theo_ngay": "Vui lòng nhập ngày cần xóa theo định dạng:\n" +
		"xoa_ngay [dd/mm/yyyy]\nVí dụ: xoa_ngay 15/03/2024",
}

func promptText(topic string) string {
	if topic == "them_tu_khoa" {
		return "Vui lòng nhập từ khóa mới theo định dạng:\n" +
			"tk [từ khóa] [số thứ tự]\n\nDanh sách danh mục:\n" +
			command.CategoryList() +
			"\n\nVí dụ: tk highlands 1"
	}
	return promptTexts[topic]
}

func submenuText(topic string) (string, MenuKind) {
	if topic == "quan_ly_tu_khoa" {
		return "Quản lý từ khóa:\nChọn chức năng bạn muốn thực hiện:", MenuKeywords
	}
	return "⚠️ Xóa dữ liệu:\nChọn chức năng bạn muốn thực hiện:", MenuWipe
}

func formatBalanceView(month string, rec core.BalanceRecord, entries []core.ExpenseEntry) string {
	spent := core.TotalSpent(entries)
	remaining := rec.SoTien + spent

	var b strings.Builder
	fmt.Fprintf(&b, "💰 Số dư tháng %s:\n\n", month)
	fmt.Fprintf(&b, "💵 Số tiền ban đầu: %s\n", FormatVND(rec.SoTien))
	fmt.Fprintf(&b, "💸 Tổng chi tiêu: %s\n", FormatVND(-spent))
	fmt.Fprintf(&b, "💎 Số dư còn lại: %s", FormatVND(remaining))
	return b.String()
}

func formatExpenseRecorded(soTien int64, moTa, danhMuc string, remaining int64) string {
	var b strings.Builder
	b.WriteString("✅ Đã ghi nhận chi tiêu:\n\n")
	fmt.Fprintf(&b, "💰 Số tiền: %s\n", FormatVND(soTien))
	fmt.Fprintf(&b, "📝 Mô tả: %s\n", moTa)
	fmt.Fprintf(&b, "🏷️ Danh mục: %s %s\n", core.GlyphFor(danhMuc), danhMuc)
	fmt.Fprintf(&b, "💎 Số dư còn lại: %s", FormatVND(remaining))
	return b.String()
}

func formatCategoryReport(header string, entries []core.ExpenseEntry, order core.SortOrder) string {
	total := core.TotalSpent(entries)

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "💵 Tổng chi tiêu: %s\n\n", FormatVND(-total))
	b.WriteString("📝 Chi tiết theo danh mục:\n")
	for _, ct := range core.GroupByCategory(entries, order) {
		fmt.Fprintf(&b, "%s %s: %s (%.1f%%)\n",
			core.GlyphFor(ct.DanhMuc), ct.DanhMuc, FormatVND(-ct.Total), ct.Percent)
	}
	return b.String()
}

func formatSummary(month string, entries []core.ExpenseEntry) string {
	var b strings.Builder
	b.WriteString(formatCategoryReport(
		fmt.Sprintf("📊 Tổng hợp chi tiêu tháng %s:\n\n", month), entries, core.SortDesc))

	b.WriteString("\n📋 Danh sách chi tiêu:\n")
	for _, day := range core.GroupByDay(entries) {
		fmt.Fprintf(&b, "\n📅 %s - Tổng: %s\n",
			day.Day.Format("02/01/2006"), FormatVND(-day.Total))
		for _, e := range day.Entries {
			fmt.Fprintf(&b, "  • %s - %s %s: %s\n",
				e.CreatedAt.Local().Format("15:04"),
				core.GlyphFor(e.DanhMuc), e.MoTa, FormatVND(-e.SoTien))
		}
	}
	return b.String()
}

func formatKeywordAdded(rule core.KeywordRule) string {
	return fmt.Sprintf("✅ Đã thêm từ khóa mới:\n\n🔤 Từ khóa: %s\n%s Danh mục: %s",
		rule.TuKhoa, core.GlyphFor(rule.DanhMuc), rule.DanhMuc)
}

func formatKeywordRemoved(rule core.KeywordRule) string {
	return fmt.Sprintf("✅ Đã xóa từ khóa:\n\n🔤 Từ khóa: %s\n%s Danh mục: %s",
		rule.TuKhoa, core.GlyphFor(rule.DanhMuc), rule.DanhMuc)
}

func formatDuplicateKeyword(tuKhoa string, existing core.KeywordRule) string {
	return fmt.Sprintf("❌ Từ khóa \"%s\" đã tồn tại trong danh mục %s", tuKhoa, existing.DanhMuc)
}

func formatKeywordNotFound(tuKhoa string) string {
	return fmt.Sprintf("❌ Không tìm thấy từ khóa \"%s\"", tuKhoa)
}

func formatInvalidCategoryIndex() string {
	return "Số thứ tự danh mục không hợp lệ. Vui lòng chọn một trong các danh mục sau:\n" +
		command.CategoryList()
}

// formatKeywordList renders rules grouped by category and splits the output
// into chunks that fit a single Telegram message.
func formatKeywordList(rules []core.KeywordRule) []string {
	grouped := map[string][]string{}
	var order []string
	for _, r := range rules {
		if _, ok := grouped[r.DanhMuc]; !ok {
			order = append(order, r.DanhMuc)
		}
		grouped[r.DanhMuc] = append(grouped[r.DanhMuc], r.TuKhoa)
	}

	var messages []string
	current := "📝 Danh sách từ khóa theo danh mục:\n\n"
	for _, danhMuc := range order {
		block := fmt.Sprintf("%s %s:\n  • %s\n\n",
			core.GlyphFor(danhMuc), danhMuc, strings.Join(grouped[danhMuc], "\n  • "))
		if len(current)+len(block) > telegramMessageLimit {
			messages = append(messages, current)
			current = "📝 Danh sách từ khóa theo danh mục (tiếp):\n\n"
		}
		current += block
	}
	return append(messages, current)
}

func formatNoExpenses(month string) string {
	return fmt.Sprintf("📊 Chưa có chi tiêu nào trong tháng %s!", month)
}

func formatWiped(count int64) string {
	return fmt.Sprintf("✅ Đã xóa %d bản ghi chi tiêu của bạn!", count)
}

func formatWipedDay(count int64, day time.Time) string {
	return fmt.Sprintf("✅ Đã xóa %d bản ghi chi tiêu ngày %s!", count, day.Format("02/01/2006"))
}

func formatNothingWipedDay(day time.Time) string {
	return fmt.Sprintf("❌ Không có dữ liệu nào để xóa cho ngày %s!", day.Format("02/01/2006"))
}
