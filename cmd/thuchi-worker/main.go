// The thuchi-worker binary consumes ledger events from AMQP and persists
// them into the audit trail collection.
package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"thuchi/internal/amqp"
	"thuchi/internal/cli"
	applog "thuchi/internal/log"
	"thuchi/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	workerLog := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	workerLog.Info("Starting thuchi-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		workerLog.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	store := cli.ConnectMongo(ctx, logger, cfg)
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			workerLog.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		workerLog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	auditWorker := worker.NewAuditWorker(store)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeLedgerEvents(gctx, func(event amqp.LedgerEvent) error {
			return auditWorker.HandleEvent(gctx, event)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		workerLog.Error("Worker error", "error", err)
		os.Exit(1)
	}
	workerLog.Info("Worker stopped gracefully")
}
