package seed

import "go.uber.org/zap"

// ProgressReporter receives import notifications in the order they happen.
type ProgressReporter interface {
	CollectionSkipped(collection string)
	RecordWritten(collection string, index int, name, id string)
	CollectionCounted(collection string, total int)
}

// LogProgress reports progress to the operator log.
type LogProgress struct {
	Logger *zap.Logger
}

func (p LogProgress) CollectionSkipped(collection string) {
	p.Logger.Info("seed: collection already has documents, skipping", zap.String("collection", collection))
}

func (p LogProgress) RecordWritten(collection string, index int, name, id string) {
	p.Logger.Info("seed: record written",
		zap.String("collection", collection),
		zap.Int("index", index),
		zap.String("name", name),
		zap.String("id", id),
	)
}

func (p LogProgress) CollectionCounted(collection string, total int) {
	p.Logger.Info("seed: collection total", zap.String("collection", collection), zap.Int("documents", total))
}
