// Package bot dispatches parsed intents against the ledger and builds the
// user-facing replies. Every error is recovered here and turned into a
// message; nothing propagates past a single inbound event.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"thuchi/internal/amqp"
	"thuchi/internal/category"
	"thuchi/internal/command"
	"thuchi/internal/core"
	"thuchi/internal/storage"
)

// ChartRenderer draws the Analyze pie chart.
type ChartRenderer interface {
	RenderPie(totals []core.CategoryTotal) ([]byte, error)
}

// EventPublisher emits ledger events after successful mutations.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event amqp.LedgerEvent) error
}

// Router maps intents to handlers. One inbound event is processed to
// completion before the transport hands over the next for that chat.
type Router struct {
	ledger   storage.Ledger
	keywords storage.Keywords
	resolver *category.Resolver
	charts   ChartRenderer
	events   EventPublisher // nil disables event publishing
	adminID  int64
	now      func() time.Time
}

func New(ledger storage.Ledger, keywords storage.Keywords, charts ChartRenderer, events EventPublisher, adminID int64) *Router {
	return &Router{
		ledger:   ledger,
		keywords: keywords,
		resolver: category.New(keywords),
		charts:   charts,
		events:   events,
		adminID:  adminID,
		now:      time.Now,
	}
}

// Welcome is the /start reply.
func (r *Router) Welcome() []Reply {
	return []Reply{{Text: welcomeText, Menu: MenuMain}}
}

// HandleText processes one free-text message. A nil result means the text
// matched nothing and gets no reply at all.
func (r *Router) HandleText(ctx context.Context, userID int64, text string) []Reply {
	in, err := command.Parse(text)
	var usage *command.UsageError
	if errors.As(err, &usage) {
		return withMenu([]Reply{{Text: usage.Hint}})
	}
	if in == nil {
		return nil
	}
	return r.dispatch(ctx, userID, in)
}

// HandleCallback processes one inline-button press. Unknown tokens are
// ignored.
func (r *Router) HandleCallback(ctx context.Context, userID int64, token string) []Reply {
	in := command.ParseCallback(token)
	if in == nil {
		return nil
	}
	return r.dispatch(ctx, userID, in)
}

func (r *Router) dispatch(ctx context.Context, userID int64, in command.Intent) []Reply {
	if command.AdminOnly(in) && userID != r.adminID {
		slog.WarnContext(ctx, "Denied admin command",
			"error", core.ErrPermissionDenied, "user_id", userID)
		return []Reply{{Text: msgNoPermission}}
	}

	switch v := in.(type) {
	case command.SetInitialBalance:
		return withMenu(r.setInitialBalance(ctx, userID, v.SoTien))
	case command.AddFunds:
		return withMenu(r.addFunds(ctx, userID, v.SoTien))
	case command.ViewBalance:
		return withMenu(r.viewBalance(ctx, userID))
	case command.MonthlyReport:
		return withMenu(r.monthlyReport(ctx, userID, v.Month))
	case command.Analyze:
		return withMenu(r.analyze(ctx, userID))
	case command.Summary:
		return withMenu(r.summary(ctx, userID))
	case command.AddKeyword:
		return withMenu(r.addKeyword(ctx, v))
	case command.ViewKeywords:
		return withMenu(r.viewKeywords(ctx))
	case command.RemoveKeyword:
		return withMenu(r.removeKeyword(ctx, v.TuKhoa))
	case command.WipeAll:
		return withMenu(r.wipeAll(ctx, userID))
	case command.WipeByDate:
		return withMenu(r.wipeByDate(ctx, userID, v.Raw))
	case command.RecordExpense:
		return withMenu(r.recordExpense(ctx, userID, v))
	case command.Prompt:
		return []Reply{{Text: promptText(v.Topic)}}
	case command.Submenu:
		text, menu := submenuText(v.Topic)
		return []Reply{{Text: text, Menu: menu}}
	case command.Donate:
		return []Reply{
			{PhotoURL: donateQRURL, Caption: donateCaption},
			{Text: menuText, Menu: MenuMain},
		}
	}
	return nil
}

// withMenu appends the main menu after a handled command so the user always
// ends up back at the function list.
func withMenu(replies []Reply) []Reply {
	if replies == nil {
		return nil
	}
	return append(replies, Reply{Text: menuText, Menu: MenuMain})
}

func (r *Router) setInitialBalance(ctx context.Context, userID, soTien int64) []Reply {
	month := core.MonthKey(r.now())
	err := r.ledger.InitBalance(ctx, userID, month, soTien)
	switch {
	case errors.Is(err, core.ErrAlreadyInitialized):
		return []Reply{{Text: msgAlreadyInit}}
	case err != nil:
		return r.storeFailure(ctx, "init balance", err)
	}

	event := amqp.NewLedgerEvent(amqp.EventBalanceInitialized, userID)
	event.Month, event.SoTien = month, soTien
	r.publish(ctx, event)

	return []Reply{{Text: "✅ Đã nhập số tiền ban đầu: " + FormatVND(soTien)}}
}

func (r *Router) addFunds(ctx context.Context, userID, soTien int64) []Reply {
	month := core.MonthKey(r.now())
	err := r.ledger.AddToBalance(ctx, userID, month, soTien)
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		return []Reply{{Text: msgNotInit}}
	case err != nil:
		return r.storeFailure(ctx, "add funds", err)
	}

	event := amqp.NewLedgerEvent(amqp.EventFundsAdded, userID)
	event.Month, event.SoTien = month, soTien
	r.publish(ctx, event)

	return []Reply{{Text: "✅ Đã thêm " + FormatVND(soTien) + " vào số dư"}}
}

func (r *Router) viewBalance(ctx context.Context, userID int64) []Reply {
	month := core.MonthKey(r.now())
	rec, err := r.ledger.Balance(ctx, userID, month)
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		return []Reply{{Text: msgNotInit}}
	case err != nil:
		return r.storeFailure(ctx, "view balance", err)
	}

	entries, err := r.ledger.Expenses(ctx, userID, month)
	if err != nil {
		return r.storeFailure(ctx, "view balance", err)
	}
	return []Reply{{Text: formatBalanceView(month, rec, entries)}}
}

func (r *Router) monthlyReport(ctx context.Context, userID int64, month string) []Reply {
	entries, err := r.ledger.Expenses(ctx, userID, month)
	if err != nil {
		return r.storeFailure(ctx, "monthly report", err)
	}
	if len(entries) == 0 {
		return []Reply{{Text: formatNoExpenses(month)}}
	}
	header := "📊 Chi tiêu tháng " + month + ":\n\n"
	return []Reply{{Text: formatCategoryReport(header, entries, core.SortAsc)}}
}

func (r *Router) analyze(ctx context.Context, userID int64) []Reply {
	month := core.MonthKey(r.now())
	entries, err := r.ledger.Expenses(ctx, userID, month)
	if err != nil {
		return r.storeFailure(ctx, "analyze", err)
	}
	if len(entries) == 0 {
		return []Reply{{Text: formatNoExpenses(month)}}
	}

	header := "📊 Phân tích chi tiêu tháng này:\n\n"
	replies := []Reply{{Text: formatCategoryReport(header, entries, core.SortDesc)}}

	png, err := r.charts.RenderPie(core.GroupByCategory(entries, core.SortDesc))
	if err != nil {
		// Chart failures degrade to a text-only report.
		slog.ErrorContext(ctx, "Failed to render pie chart", "error", err, "user_id", userID)
		return replies
	}
	if png != nil {
		replies = append(replies, Reply{Photo: png, PhotoName: "phan_tich_" + month + ".png"})
	}
	return replies
}

func (r *Router) summary(ctx context.Context, userID int64) []Reply {
	month := core.MonthKey(r.now())
	entries, err := r.ledger.Expenses(ctx, userID, month)
	if err != nil {
		return r.storeFailure(ctx, "summary", err)
	}
	if len(entries) == 0 {
		return []Reply{{Text: formatNoExpenses(month)}}
	}
	return []Reply{{Text: formatSummary(month, entries)}}
}

func (r *Router) addKeyword(ctx context.Context, v command.AddKeyword) []Reply {
	cat, err := core.CategoryByIndex(v.Index)
	if errors.Is(err, core.ErrInvalidCategoryIndex) {
		return []Reply{{Text: formatInvalidCategoryIndex()}}
	}

	rule := core.KeywordRule{TuKhoa: v.TuKhoa, DanhMuc: cat.Name, NgayTao: r.now()}
	err = r.keywords.Add(ctx, rule)
	switch {
	case errors.Is(err, core.ErrDuplicateKeyword):
		existing, findErr := r.keywords.Find(ctx, v.TuKhoa)
		if findErr != nil {
			return r.storeFailure(ctx, "add keyword", findErr)
		}
		return []Reply{{Text: formatDuplicateKeyword(v.TuKhoa, existing)}}
	case err != nil:
		return r.storeFailure(ctx, "add keyword", err)
	}
	return []Reply{{Text: formatKeywordAdded(rule)}}
}

func (r *Router) viewKeywords(ctx context.Context) []Reply {
	rules, err := r.keywords.AllByCategory(ctx)
	if err != nil {
		return r.storeFailure(ctx, "view keywords", err)
	}
	if len(rules) == 0 {
		return []Reply{{Text: msgNoKeywords}}
	}
	var replies []Reply
	for _, msg := range formatKeywordList(rules) {
		replies = append(replies, Reply{Text: msg})
	}
	return replies
}

func (r *Router) removeKeyword(ctx context.Context, tuKhoa string) []Reply {
	rule, err := r.keywords.Remove(ctx, tuKhoa)
	switch {
	case errors.Is(err, core.ErrKeywordNotFound):
		return []Reply{{Text: formatKeywordNotFound(tuKhoa)}}
	case err != nil:
		return r.storeFailure(ctx, "remove keyword", err)
	}
	return []Reply{{Text: formatKeywordRemoved(rule)}}
}

func (r *Router) wipeAll(ctx context.Context, userID int64) []Reply {
	count, err := r.ledger.WipeAll(ctx, userID)
	if err != nil {
		return r.storeFailure(ctx, "wipe all", err)
	}
	if count == 0 {
		return []Reply{{Text: msgNothingWiped}}
	}

	event := amqp.NewLedgerEvent(amqp.EventDataWiped, userID)
	r.publish(ctx, event)

	return []Reply{{Text: formatWiped(count)}}
}

func (r *Router) wipeByDate(ctx context.Context, userID int64, raw string) []Reply {
	day, err := core.ParseDay(raw)
	if err != nil {
		return []Reply{{Text: msgBadDate}}
	}
	count, err := r.ledger.WipeDay(ctx, userID, day)
	if err != nil {
		return r.storeFailure(ctx, "wipe by date", err)
	}
	if count == 0 {
		return []Reply{{Text: formatNothingWipedDay(day)}}
	}

	event := amqp.NewLedgerEvent(amqp.EventDataWiped, userID)
	r.publish(ctx, event)

	return []Reply{{Text: formatWipedDay(count, day)}}
}

func (r *Router) recordExpense(ctx context.Context, userID int64, v command.RecordExpense) []Reply {
	month := core.MonthKey(r.now())

	if _, err := r.ledger.Balance(ctx, userID, month); err != nil {
		if errors.Is(err, core.ErrNotInitialized) {
			return []Reply{{Text: msgNotInit}}
		}
		return r.storeFailure(ctx, "record expense", err)
	}

	danhMuc, err := r.resolver.Resolve(ctx, v.MoTa)
	if err != nil {
		return r.storeFailure(ctx, "record expense", err)
	}

	entry := core.ExpenseEntry{
		UserID:    userID,
		Month:     month,
		SoTien:    -v.SoTien,
		MoTa:      v.MoTa,
		DanhMuc:   danhMuc,
		CreatedAt: r.now(),
	}
	if err := r.ledger.AddExpense(ctx, entry); err != nil {
		return r.storeFailure(ctx, "record expense", err)
	}
	if err := r.ledger.AddToBalance(ctx, userID, month, -v.SoTien); err != nil {
		return r.storeFailure(ctx, "record expense", err)
	}

	rec, err := r.ledger.Balance(ctx, userID, month)
	if err != nil {
		return r.storeFailure(ctx, "record expense", err)
	}

	event := amqp.NewLedgerEvent(amqp.EventExpenseRecorded, userID)
	event.Month, event.SoTien, event.DanhMuc = month, -v.SoTien, danhMuc
	r.publish(ctx, event)

	return []Reply{{Text: formatExpenseRecorded(v.SoTien, v.MoTa, danhMuc, rec.SoTien)}}
}

// publish emits a ledger event; publishing problems are logged and never
// fail the request, the mutation already happened.
func (r *Router) publish(ctx context.Context, event amqp.LedgerEvent) {
	if r.events == nil {
		return
	}
	if err := r.events.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"error", err, "type", event.Type, "user_id", event.UserID)
	}
}

func (r *Router) storeFailure(ctx context.Context, op string, err error) []Reply {
	slog.ErrorContext(ctx, "Store operation failed", "operation", op, "error", err)
	return []Reply{{Text: msgStoreFailure}}
}
