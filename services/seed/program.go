package seed

import (
	"context"
	"time"

	"bookingdesk/config"
	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/utils"

	"go.uber.org/zap"
)

const (
	CategoriesCollection = "categories"
	ServicesCollection   = "services"
)

// Plans returns the category and service imports, in that order.
func Plans(cfg config.Config, now func() time.Time, images ImageResolver) []CollectionPlan {
	return []CollectionPlan{
		{
			Collection:  CategoriesCollection,
			FixturePath: cfg.CategoriesFile,
			Enrich:      CategoryEnricher(now),
		},
		{
			Collection:  ServicesCollection,
			FixturePath: cfg.ServicesFile,
			Enrich:      ServiceEnricher(now, images),
		},
	}
}

func PlaceholderFromConfig(cfg config.Config) Placeholder {
	p := DefaultPlaceholder()
	if cfg.PlaceholderHost != "" {
		p.Host = cfg.PlaceholderHost
	}
	if cfg.PlaceholderBg != "" {
		p.Background = cfg.PlaceholderBg
	}
	if cfg.PlaceholderFg != "" {
		p.Foreground = cfg.PlaceholderFg
	}
	return p
}

// NewImageResolver returns placeholder resolution, or Cloudinary uploads of
// files under MEDIA_ROOT when uploads are allowed and credentials are set.
func NewImageResolver(cfg config.Config, allowUpload bool, logger *zap.Logger) (ImageResolver, error) {
	placeholder := PlaceholderFromConfig(cfg)
	if !allowUpload || !cfg.CloudinaryEnabled() {
		return placeholder, nil
	}
	media, err := utils.Cloudinary(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("seed: uploading local images to Cloudinary", zap.String("mediaRoot", cfg.MediaRoot))
	return &MediaResolver{Media: media, Root: cfg.MediaRoot, Fallback: placeholder, Logger: logger}, nil
}

// NewRunLock returns the Redis run lock when SEED_LOCK_ENABLED is set, and a
// no-op lock otherwise. The returned close func releases the Redis client.
func NewRunLock(ctx context.Context, cfg config.Config) (RunLock, func() error, error) {
	if !cfg.SeedLockEnabled {
		return NopLock{}, func() error { return nil }, nil
	}
	client, err := utils.NewLockClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewRedisRunLock(client, utils.SeedLockKey, cfg.SeedLockTTL), client.Close, nil
}

// Execute runs one complete import of the category and service fixtures
// into store. allowUpload selects Cloudinary uploads for local images.
func Execute(ctx context.Context, cfg config.Config, store documentsRepo.Store, allowUpload bool, logger *zap.Logger) (*Report, error) {
	images, err := NewImageResolver(cfg, allowUpload, logger)
	if err != nil {
		return nil, err
	}
	lock, closeLock, err := NewRunLock(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeLock(); err != nil {
			logger.Warn("seed: failed to close lock client", zap.Error(err))
		}
	}()

	importer := &DefaultImporter{
		Store:    store,
		Progress: LogProgress{Logger: logger},
		Lock:     lock,
		Logger:   logger,
	}
	return importer.Run(ctx, Plans(cfg, time.Now, images)...)
}
