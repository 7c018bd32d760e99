// Package module wires the redis queue and its worker, exposing both as ports
package module

import (
	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/httpkit"
	"socialnorm/internal/platform/logger"
	normdomain "socialnorm/internal/services/normalizer/domain"
	"socialnorm/internal/services/queue/domain"
	qhttp "socialnorm/internal/services/queue/http"
	"socialnorm/internal/services/queue/repo"
	"socialnorm/internal/services/queue/service"
)

// Needs is injected with modkit.WithPorts; the worker needs a Normalizer,
// enqueue-only processes can leave it empty
type Needs struct {
	Normalizer normdomain.Normalizer
}

// Ports holds the ports exposed by the queue module
type Ports struct {
	Worker   domain.WorkerPort
	Enqueuer domain.EnqueuePort
}

// Module implements modkit.Module for the queue
type Module struct {
	modkit.Base
	svc *service.Svc
}

// New reads options from deps.Cfg; deps.RDS is required
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith is New with explicit options
func NewWith(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	if deps.RDS == nil {
		logger.Named("queue").Panic().Msg("queue module requires a redis client (SERVICE_REDIS_ENABLED)")
	}
	b := modkit.Build(opts...)
	var needs Needs
	if p, ok := b.Ports.(Needs); ok {
		needs = p
	}

	svc := service.New(repo.NewRedis(deps.RDS, o.Prefix), needs.Normalizer, service.Config{
		Workers:       o.Workers,
		PopTimeout:    o.PopTimeout,
		Backoff:       o.Backoff,
		SettleTimeout: o.Settle,
		Platforms:     o.Platforms,
	})
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(
		[]modkit.Option{modkit.WithName("queue"), modkit.WithPrefix("/queue")},
		opts,
		func(r httpkit.Router) { qhttp.Register(r, svc) },
	)
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Worker: m.svc, Enqueuer: m.svc} }
