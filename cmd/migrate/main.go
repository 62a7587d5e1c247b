// Command migrate imports the category and service fixtures into empty
// collections. When Cloudinary is configured, local images found under
// MEDIA_ROOT are uploaded and their delivery URLs stored instead of
// placeholders.
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
	report, err := seed.Execute(ctx, cfg, store, true, logger)
	if err != nil {
		return err
	}
	written := 0
	for _, res := range report.Results {
		written += res.Written
	}
	logger.Info("migrate: finished", zap.Int("written", written), zap.Int("collections", len(report.Results)))
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
		logger.Fatal("migrate: failed to open document store", zap.Error(err))
	}

	err = run(ctx, config.AppConfig, store, logger)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("migrate: failed to close document store", zap.Error(cerr))
	}
	if err != nil {
		logger.Fatal("migrate: import failed", zap.Error(err))
	}
}
