package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLocked is returned when another import run holds the run lock.
var ErrLocked = errors.New("seed: another import run is in progress")

// RunLock serializes operator runs. It does not make the probe-then-write
// sequence atomic with respect to other writers.
type RunLock interface {
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}

// NopLock never blocks.
type NopLock struct{}

func (NopLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// releaseScript deletes the key only if this run still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisRunLock is a SETNX lock with a TTL, so a crashed run cannot hold it forever.
type RedisRunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisRunLock(client *redis.Client, key string, ttl time.Duration) *RedisRunLock {
	return &RedisRunLock{client: client, key: key, ttl: ttl}
}

func (l *RedisRunLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("seed: acquire lock %s: %w", l.key, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("seed: release lock %s: %w", l.key, err)
		}
		return nil
	}, nil
}
