package module

import (
	"time"

	"socialnorm/internal/platform/config"
	"socialnorm/internal/services/diagnostics/repo"
)

// Options controls which observers run and how events are persisted
type Options struct {
	Log          bool
	Tally        bool
	Metrics      bool
	Namespace    string
	MaxKeys      int
	Persist      bool
	Table        string
	EnsureSchema bool
	Buffer       int
	BatchSize    int
	FlushEvery   time.Duration
}

// FromConfig reads with the DIAG_ prefix under cfg (CORE_DIAG_ from the root)
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DIAG_")
	return Options{
		Log:          c.MayBool("LOG", true),
		Tally:        c.MayBool("TALLY", true),
		Metrics:      c.MayBool("METRICS", true),
		Namespace:    c.MayString("METRICS_NAMESPACE", "socialnorm"),
		MaxKeys:      c.MayInt("TALLY_MAX_KEYS", 10000),
		Persist:      c.MayBool("PERSIST", true),
		Table:        c.MayString("TABLE", repo.DefaultTable),
		EnsureSchema: c.MayBool("ENSURE_SCHEMA", true),
		Buffer:       c.MayInt("BUFFER", 4096),
		BatchSize:    c.MayInt("BATCH_SIZE", 500),
		FlushEvery:   c.MayDuration("FLUSH_EVERY", 2*time.Second),
	}
}
