package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tobuy/internal/amqp"
	"tobuy/internal/cache"
	"tobuy/internal/cli"
	ports "tobuy/internal/sheets"
	gsheet "tobuy/internal/sheets/google"
	mem "tobuy/internal/sheets/memory"
	"tobuy/internal/storage"
	"tobuy/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting tobuy-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenStore(logger, cfg)
	defer func() {
		if err := storage.CloseStore(store); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	cacheManager := cache.NewManager()
	defer cacheManager.Stop()

	var (
		replacer ports.ListReplacer
		reader   ports.ListReader
	)
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		replacer, reader = client, client
		cacheManager.Register(client.Cleaner())
		cacheManager.StartCleanup(10 * time.Minute)
		logger.Info("Google Sheets client initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		sheet := mem.New()
		replacer, reader = sheet, sheet
		logger.Info("Google Sheets disabled - exporting to in-memory sheet")
	}

	syncWorker := worker.NewSyncWorker(store, replacer, reader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catch up on anything changed while the worker was down.
	logger.Info("Performing startup reconcile...")
	if err := syncWorker.Reconcile(ctx); err != nil {
		logger.Error("Startup reconcile failed", "error", err)
		// Keep running; the consumer and ticker retry.
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			err := amqpClient.ConsumeItemsChanged(ctx, func(msg *amqp.ItemsChangedMessage) error {
				return syncWorker.HandleItemsChanged(ctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", "error", err)
				cancel()
			}
		}()
	} else {
		logger.Info("AMQP disabled - relying on the periodic reconcile only")
	}

	go func() {
		ticker := time.NewTicker(cfg.SheetsSyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := syncWorker.Reconcile(ctx); err != nil {
					logger.Error("Periodic reconcile failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Worker context cancelled")
	}
	cancel()
	logger.Info("Worker stopped gracefully")
}
