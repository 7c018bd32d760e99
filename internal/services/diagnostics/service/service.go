package service

import (
	"context"

	"socialnorm/internal/core/normalize"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/services/diagnostics/domain"
)

// Config selects which observers are active
type Config struct {
	Log     bool
	Tally   bool
	Metrics bool
	MaxKeys int
	Sink    SinkConfig
}

// Svc bundles the enabled observers behind one Observer and one FailureRecorder
type Svc struct {
	tally   *Tally
	metrics *Metrics
	sink    *Sink
	reader  domain.EventReader

	obs      normalize.Observer
	failures []domain.FailureRecorder
}

var (
	_ normalize.Observer     = (*Svc)(nil)
	_ domain.FailureRecorder = (*Svc)(nil)
	_ domain.StatsPort       = (*Svc)(nil)
	_ domain.EventReader     = (*Svc)(nil)
)

// New builds the observers named by cfg; store may be nil, then no events are persisted
func New(cfg Config, metrics *Metrics, store domain.EventStore) *Svc {
	s := &Svc{}
	var obs []normalize.Observer

	if cfg.Log {
		obs = append(obs, Log{})
		s.failures = append(s.failures, Log{})
	}
	if cfg.Tally {
		s.tally = NewTally(cfg.MaxKeys)
		obs = append(obs, s.tally)
		s.failures = append(s.failures, s.tally)
	}
	if cfg.Metrics && metrics != nil {
		s.metrics = metrics
		obs = append(obs, metrics)
		s.failures = append(s.failures, metrics)
		if cfg.Sink.OnDrop == nil {
			cfg.Sink.OnDrop = metrics.Dropped.Inc
		}
	}
	if store != nil {
		s.sink = NewSink(store, cfg.Sink)
		s.reader = store
		obs = append(obs, s.sink)
	}
	s.obs = normalize.Fanout(obs...)
	return s
}

// Observe implements normalize.Observer
func (s *Svc) Observe(ctx context.Context, d normalize.Diagnostic) { s.obs.Observe(ctx, d) }

// Failed implements domain.FailureRecorder
func (s *Svc) Failed(ctx context.Context, platform string, err error) {
	for _, f := range s.failures {
		f.Failed(ctx, platform, err)
	}
}

// Snapshot implements domain.StatsPort; an empty snapshot when the tally is off
func (s *Svc) Snapshot(f domain.StatsFilter) domain.Snapshot {
	if s.tally == nil {
		return domain.Snapshot{ByPlatform: map[string]int64{}, ByType: map[string]int64{}, Failed: map[string]int64{}, Rows: []domain.TallyRow{}}
	}
	return s.tally.Snapshot(f)
}

// Top implements domain.EventReader; unavailable without clickhouse
func (s *Svc) Top(ctx context.Context, in domain.TopInput) ([]domain.TopRow, error) {
	if s.reader == nil {
		return nil, perr.Unavailablef("diagnostics storage is not configured")
	}
	return s.reader.Top(ctx, in)
}

// Metrics returns the prometheus exporter, nil when disabled
func (s *Svc) Metrics() *Metrics { return s.metrics }

// Close flushes the event sink
func (s *Svc) Close(ctx context.Context) error {
	if s.sink == nil {
		return nil
	}
	return s.sink.Close(ctx)
}
