// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"bookingdesk/config"

	"github.com/go-redis/redis/v8"
)

// NewLockClient returns a Redis client on the lock database and verifies
// the connection.
func NewLockClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Lock): %w", err)
	}
	return client, nil
}
