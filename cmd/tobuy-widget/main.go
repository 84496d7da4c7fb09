package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"tobuy/internal/amqp"
	"tobuy/internal/cli"
	"tobuy/internal/storage"
	"tobuy/internal/widget"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting tobuy-widget")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenStore(logger, cfg)
	defer func() {
		if err := storage.CloseStore(store); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	renderer := widget.NewRenderer(store, cfg.WidgetSnapshotPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First render before anything else, so the snapshot file exists as
	// soon as the process is up.
	if err := renderer.Render(ctx); err != nil {
		logger.Error("Initial widget render failed", "error", err)
		os.Exit(1)
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
	} else {
		logger.Info("AMQP disabled - refreshing on the ticker only")
	}

	g, gctx := errgroup.WithContext(ctx)

	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeItemsChanged(gctx, func(msg *amqp.ItemsChangedMessage) error {
				logger.Info("Re-rendering widget snapshot",
					"key", msg.Key,
					"revision", msg.Revision)
				return renderer.Render(gctx)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.WidgetRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := renderer.Render(gctx); err != nil {
					logger.Error("Periodic widget render failed", "error", err)
				}
			}
		}
	})

	_, done := cli.GracefulShutdown(logger, 10*time.Second, cancel)

	if err := g.Wait(); err != nil {
		logger.Error("Widget worker failed", "error", err)
		os.Exit(1)
	}
	<-done
	logger.Info("Widget worker stopped gracefully")
}
