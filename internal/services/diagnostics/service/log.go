package service

import (
	"context"

	"socialnorm/internal/core/normalize"
	"socialnorm/internal/platform/logger"
)

// Log writes one info line per normalized record
// the platform field comes from the request context (logger.WithRequest)
type Log struct{}

var _ normalize.Observer = Log{}

// Observe implements normalize.Observer
func (Log) Observe(ctx context.Context, d normalize.Diagnostic) {
	logger.C(ctx).Info().
		Str("type", string(d.Type)).
		Str("subreddit", d.Subreddit).
		Str("query", d.Query).
		Int("count", d.Count).
		Msgf("processed %s | query: %s | subreddit: %s | returned %d document", d.Type, d.Query, d.Subreddit, d.Count)
}

// Failed logs a rejected record at warn
func (Log) Failed(ctx context.Context, _ string, err error) {
	logger.C(ctx).Warn().Err(err).Str("reason", Reason(err)).Msg("normalize failed")
}
