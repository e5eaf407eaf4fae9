package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/verbdrill/internal/config"
)

// OpenRedis creates a Redis client and waits until it answers a ping.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, attempts uint) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if attempts == 0 {
		attempts = 1
	}
	if err := retry.Do(
		func() error {
			return client.Ping(ctx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying redis ping", "attempt", n+1, "addr", cfg.Addr, "error", err)
		}),
	); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping(%s) > %w", cfg.Addr, err)
	}
	return client, nil
}
