package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"thuchi/internal/amqp"
	"thuchi/internal/bot"
	"thuchi/internal/chart"
	"thuchi/internal/cli"
	applog "thuchi/internal/log"
	"thuchi/internal/storage"
	"thuchi/internal/storage/memory"
	"thuchi/internal/telegram"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	// Choose the data backend. Memory is for local development only; data
	// does not survive a restart.
	var (
		ledger   storage.Ledger
		keywords storage.Keywords
	)
	switch cfg.DataBackend {
	case "memory":
		store := memory.New()
		ledger, keywords = store, store
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	default:
		store := cli.ConnectMongo(ctx, logger, cfg)
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				logger.Error("Failed to disconnect MongoDB", "error", err)
			}
		}()
		ledger, keywords = store, store
	}

	// The AMQP event pipeline is optional; without a broker the bot just
	// skips publishing.
	var events bot.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	router := bot.New(ledger, keywords, chart.NewRenderer(), events, cfg.AdminID)

	tgBot, err := telegram.New(cfg.TelegramToken, router, cfg.AdminID, applog.New(applog.DefaultConfig()))
	if err != nil {
		logger.Error("Failed to initialize Telegram bot", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting thuchi bot", "backend", cfg.DataBackend, "admin_id", cfg.AdminID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgBot.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Bot error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}
