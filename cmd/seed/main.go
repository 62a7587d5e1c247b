// Command seed fills empty categories and services collections from the
// JSON fixtures, using placeholder URLs for every local image path.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bookingdesk/config"
	"bookingdesk/database"
	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/services/seed"
	"bookingdesk/utils"

	"go.uber.org/zap"
)

func run(ctx context.Context, cfg config.Config, store documentsRepo.Store, logger *zap.Logger) error {
	report, err := seed.Execute(ctx, cfg, store, false, logger)
	if err != nil {
		return err
	}
	for _, res := range report.Results {
		logger.Info("seed: done",
			zap.String("collection", res.Collection),
			zap.Bool("skipped", res.Skipped),
			zap.Int("written", res.Written),
			zap.Int("total", res.Total),
		)
	}
	return nil
}

func main() {
	loadEnvFiles()
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.OpenStore(ctx, config.AppConfig, logger)
	if err != nil {
		logger.Fatal("seed: failed to open document store", zap.Error(err))
	}

	err = run(ctx, config.AppConfig, store, logger)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("seed: failed to close document store", zap.Error(cerr))
	}
	if err != nil {
		logger.Fatal("seed: import failed", zap.Error(err))
	}
	logger.Info("seed: import complete")
}
