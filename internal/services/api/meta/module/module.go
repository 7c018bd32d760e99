// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/httpkit"
	metahttp "socialnorm/internal/services/api/meta/http"

	"github.com/redis/go-redis/v9"
)

// Module implements modkit.Module for meta
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module; readiness pings whichever backends deps carries
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	m := &Module{startedAt: time.Now()}

	d := metahttp.Deps{
		ServiceName:  service,
		StartedAt:    m.startedAt,
		ReadyTimeout: deps.Cfg.Prefix("META_").MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	if deps.RDS != nil {
		d.Redis = redisPinger{c: deps.RDS}
	}

	m.Base = modkit.NewBase(
		[]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")},
		opts,
		func(r httpkit.Router) { metahttp.Register(r, d) },
	)
	return m
}

// Ports implements modkit.Module, meta exposes none
func (m *Module) Ports() any { return nil }

type redisPinger struct{ c redis.UniversalClient }

func (p redisPinger) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }
