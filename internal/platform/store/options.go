package store

import (
	"errors"

	"socialnorm/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithRedis injects an already built client; Open will not dial redis
func WithRedis(c redis.UniversalClient) Option {
	return func(s *Store) error {
		if c == nil {
			return errors.New("store: nil redis client")
		}
		s.RDS = c
		return nil
	}
}

// WithClickhouse injects a clickhouse seam; Open will not dial clickhouse
func WithClickhouse(c Clickhouse) Option {
	return func(s *Store) error {
		if c == nil {
			return errors.New("store: nil clickhouse")
		}
		s.CH = c
		return nil
	}
}
