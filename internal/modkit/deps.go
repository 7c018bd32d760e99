// Package modkit provides module wiring and core deps
package modkit

import (
	"socialnorm/internal/platform/config"
	"socialnorm/internal/platform/logger"
	"socialnorm/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	CH  store.Clickhouse
	RDS redis.UniversalClient
}

// FromStore lifts the opened backends out of st; a nil store yields no backends
func FromStore(cfg config.Conf, log logger.Logger, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.CH, d.RDS = st.CH, st.RDS
	}
	return d
}
