package database

import (
	"context"
	"fmt"
	"time"

	"bookingdesk/config"
	documentsRepo "bookingdesk/database/repository/documents"
	"bookingdesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
)

// InitDB connects to MongoDB and verifies the connection.
func InitDB(ctx context.Context, url string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(url)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// OpenStore builds the process-wide document store selected by STORE_BACKEND.
// It is called once at startup and the result is passed to every component.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (documentsRepo.Store, error) {
	switch cfg.StoreBackend {
	case BackendFirestore, "":
		client, err := utils.NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Firestore", zap.String("projectID", cfg.FirebaseProjectID))
		return documentsRepo.NewFirestoreStore(client), nil
	case BackendMongo:
		client, err := InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB successfully!", zap.String("database", cfg.DatabaseName))
		return documentsRepo.NewMongoStore(client, cfg.DatabaseName), nil
	case BackendMemory:
		logger.Warn("Using in-memory document store; data is lost on exit")
		return documentsRepo.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("database: unknown store backend %q", cfg.StoreBackend)
	}
}
