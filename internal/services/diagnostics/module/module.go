// Package module wires the diagnostics observers and exposes their ports
package module

import (
	"context"
	"net/http"
	"time"

	"socialnorm/internal/core/normalize"
	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/httpkit"
	"socialnorm/internal/platform/logger"
	"socialnorm/internal/services/diagnostics/domain"
	diaghttp "socialnorm/internal/services/diagnostics/http"
	"socialnorm/internal/services/diagnostics/repo"
	"socialnorm/internal/services/diagnostics/service"
)

// Ports holds the ports exposed by the diagnostics module
type Ports struct {
	Observer normalize.Observer
	Failures domain.FailureRecorder
	Stats    domain.StatsPort
	Events   domain.EventReader

	// Metrics serves the prometheus exposition, nil when metrics are off
	Metrics http.Handler
}

// Module implements modkit.Module for diagnostics
type Module struct {
	modkit.Base
	svc   *service.Svc
	ports Ports
}

// New builds the observers from deps.Cfg; clickhouse persistence needs deps.CH
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith is New with explicit options
func NewWith(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	log := logger.Named("diagnostics")

	var store domain.EventStore
	if o.Persist && deps.CH != nil {
		r, err := repo.NewCH(deps.CH, o.Table)
		if err != nil {
			log.Panic().Err(err).Msg("diagnostics repo")
		}
		if o.EnsureSchema {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := r.EnsureSchema(ctx); err != nil {
				log.Error().Err(err).Str("table", r.Table()).Msg("ensure diagnostics schema failed")
			}
			cancel()
		}
		store = r
	}

	var metrics *service.Metrics
	if o.Metrics {
		metrics = service.NewMetrics(o.Namespace)
	}

	svc := service.New(service.Config{
		Log:     o.Log,
		Tally:   o.Tally,
		Metrics: o.Metrics,
		MaxKeys: o.MaxKeys,
		Sink: service.SinkConfig{
			Buffer:     o.Buffer,
			BatchSize:  o.BatchSize,
			FlushEvery: o.FlushEvery,
		},
	}, metrics, store)

	m := &Module{svc: svc}
	m.ports = Ports{Observer: svc, Failures: svc, Stats: svc, Events: svc}
	if metrics != nil {
		m.ports.Metrics = metrics.Handler()
	}
	m.Base = modkit.NewBase(
		[]modkit.Option{modkit.WithName("diagnostics"), modkit.WithPrefix("/diagnostics")},
		opts,
		func(r httpkit.Router) { diaghttp.Register(r, svc) },
	)
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Close flushes buffered events
func (m *Module) Close(ctx context.Context) error { return m.svc.Close(ctx) }
