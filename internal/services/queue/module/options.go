package module

import (
	"time"

	"socialnorm/internal/platform/config"
	"socialnorm/internal/services/queue/repo"
)

// Options controls the queue worker
type Options struct {
	Workers    int
	PopTimeout time.Duration
	Backoff    time.Duration
	Settle     time.Duration
	Prefix     string
	Platforms  []string
}

// FromConfig reads with the WORKER_ prefix (CORE_WORKER_ from the root)
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WORKER_")
	return Options{
		Workers:    c.MayInt("CONCURRENCY", 4),
		PopTimeout: c.MayDuration("POP_TIMEOUT", 2*time.Second),
		Backoff:    c.MayDuration("BACKOFF", time.Second),
		Settle:     c.MayDuration("SETTLE_TIMEOUT", 5*time.Second),
		Prefix:     c.MayString("KEY_PREFIX", repo.DefaultPrefix),
		Platforms:  c.MayCSV("PLATFORMS", []string{"bluesky", "reddit"}),
	}
}
