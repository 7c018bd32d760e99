package store

import (
	"context"
	"fmt"
	"time"

	chx "socialnorm/internal/platform/store/ch"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAttempts = 20
	defaultPingTO   = 3 * time.Second
	backoffStart    = 150 * time.Millisecond
	backoffCeiling  = 2 * time.Second
)

// pingRetry pings until healthy, the attempts run out or ctx ends
func pingRetry(ctx context.Context, cfg Config, s *Store, name string, ping func(context.Context) error) error {
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTO
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Log.Debug().Err(lastErr).Str("backend", name).Int("attempt", i+1).Msg("ping failed, retrying")

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:          cfg.CH.URL,
		ClientName:   cfg.AppName,
		ClientTag:    cfg.Role,
		DialTimeout:  cfg.CH.DialTimeout,
		MaxOpenConns: cfg.CH.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	// publish the adapter only after the pool is healthy
	if err := pingRetry(ctx, cfg, s, "clickhouse", c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}

// redisOptions resolves URL or Addr into client options
func redisOptions(cfg RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		o, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		if cfg.PoolSize > 0 {
			o.PoolSize = cfg.PoolSize
		}
		return o, nil
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: no url or addr configured")
	}
	return &redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}, nil
}

func openRedis(ctx context.Context, cfg Config, s *Store) (redis.UniversalClient, error) {
	o, err := redisOptions(cfg.RDS)
	if err != nil {
		return nil, err
	}
	if cfg.AppName != "" {
		o.ClientName = cfg.AppName + "-" + cfg.Role
	}
	c := redis.NewClient(o)
	if err := pingRetry(ctx, cfg, s, "redis", func(ctx context.Context) error { return c.Ping(ctx).Err() }); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
