// Package telegram is the transport layer: it turns Telegram updates into
// router events and sends the router's replies back, keyboards and chart
// photos included. No ledger logic lives here.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"thuchi/internal/bot"
	applog "thuchi/internal/log"
)

// Bot runs the long-polling loop against the Telegram API.
type Bot struct {
	api     *tgbotapi.BotAPI
	router  *bot.Router
	adminID int64
	log     *applog.Logger
}

func New(token string, router *bot.Router, adminID int64, logger *applog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram api: %w", err)
	}
	return &Bot{
		api:     api,
		router:  router,
		adminID: adminID,
		log:     logger.WithComponent(applog.ComponentTelegram),
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is processed to
// completion before the next one is handled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("Bot started", "username", b.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("Bot stopped", "reason", ctx.Err())
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("update channel closed")
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}
	b.send(msg.Chat.ID, msg.From.ID, b.router.Welcome())
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	replies := b.router.HandleText(ctx, msg.From.ID, msg.Text)
	b.send(msg.Chat.ID, msg.From.ID, replies)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Ack the button press so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Error("Failed to ack callback", "error", err)
	}
	if query.Message == nil {
		return
	}

	replies := b.router.HandleCallback(ctx, query.From.ID, query.Data)
	b.send(query.Message.Chat.ID, query.From.ID, replies)
}

func (b *Bot) send(chatID, userID int64, replies []bot.Reply) {
	for _, reply := range replies {
		var msg tgbotapi.Chattable
		switch {
		case reply.Photo != nil:
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
				Name:  reply.PhotoName,
				Bytes: reply.Photo,
			})
			photo.Caption = reply.Caption
			msg = photo
		case reply.PhotoURL != "":
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(reply.PhotoURL))
			photo.Caption = reply.Caption
			msg = photo
		default:
			text := tgbotapi.NewMessage(chatID, reply.Text)
			if kb, ok := b.keyboard(reply.Menu, userID); ok {
				text.ReplyMarkup = kb
			}
			msg = text
		}

		if _, err := b.api.Send(msg); err != nil {
			b.log.Error("Failed to send reply", "error", err, "chat_id", chatID)
		}
	}
}

func (b *Bot) keyboard(menu bot.MenuKind, userID int64) (tgbotapi.InlineKeyboardMarkup, bool) {
	switch menu {
	case bot.MenuMain:
		return b.mainMenu(userID), true
	case bot.MenuKeywords:
		return keywordMenu(), true
	case bot.MenuWipe:
		return wipeMenu(), true
	}
	return tgbotapi.InlineKeyboardMarkup{}, false
}

func (b *Bot) mainMenu(userID int64) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Nhập số tiền ban đầu", "nhap_tien"),
			tgbotapi.NewInlineKeyboardButtonData("Thêm tiền", "them_tien"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Xem số tiền còn lại", "xem_tien"),
			tgbotapi.NewInlineKeyboardButtonData("Phân tích chi tiêu", "phan_tich"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Tổng hợp chi tiêu", "tong_hop"),
			tgbotapi.NewInlineKeyboardButtonData("Xem chi tiêu theo tháng", "xem_thang"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☕️ Buy me a coffee", "donate"),
		),
	}

	// The keyword-management entry only shows for the admin.
	if userID == b.adminID {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Quản lý từ khóa", "quan_ly_tu_khoa"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Xóa dữ liệu", "xoa_du_lieu"),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Xóa dữ liệu", "xoa_du_lieu"),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func keywordMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Thêm từ khóa", "them_tu_khoa"),
			tgbotapi.NewInlineKeyboardButtonData("Xem từ khóa", "xem_tu_khoa"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Xóa từ khóa", "xoa_tu_khoa"),
		),
	)
}

func wipeMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Xóa toàn bộ dữ liệu", "xoa_tat_ca"),
			tgbotapi.NewInlineKeyboardButtonData("🗓 Xóa theo ngày", "xoa_theo_ngay"),
		),
	)
}
