// Package module wires the normalizer into the API using modkit
package module

import (
	"socialnorm/internal/core/normalize"
	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/httpkit"
	diagdomain "socialnorm/internal/services/diagnostics/domain"
	"socialnorm/internal/services/normalizer/domain"
	nhttp "socialnorm/internal/services/normalizer/http"
	nsvc "socialnorm/internal/services/normalizer/service"
)

// Needs are the optional ports injected with modkit.WithPorts, usually from diagnostics
type Needs struct {
	Observer normalize.Observer
	Failures domain.Failures
	Stats    diagdomain.StatsPort
}

// Ports are exposed to other modules and to the worker
type Ports struct {
	Service domain.ServicePort
}

// Module implements the normalizer module
type Module struct {
	modkit.Base
	svc *nsvc.Svc
}

// New constructs the module; without injected Needs it runs with no diagnostics
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	var needs Needs
	if p, ok := b.Ports.(Needs); ok {
		needs = p
	}

	svc := nsvc.New(normalize.Default(needs.Observer), needs.Failures)
	m := &Module{svc: svc}
	m.Base = modkit.NewBase(
		[]modkit.Option{modkit.WithName("normalizer"), modkit.WithPrefix("/normalize")},
		opts,
		func(r httpkit.Router) { nhttp.Register(r, svc, needs.Stats) },
	)
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Service: m.svc} }
