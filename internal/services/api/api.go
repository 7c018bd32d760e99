// Package api provides the HTTP API for the application
package api

import (
	"context"
	"net/http"
	"time"

	"socialnorm/internal/platform/config"
	"socialnorm/internal/platform/logger"
	phttp "socialnorm/internal/platform/net/http"
	"socialnorm/internal/platform/net/middleware"
	"socialnorm/internal/platform/store"

	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/httpkit"
	"socialnorm/internal/modkit/module"
	"socialnorm/internal/modkit/swaggerkit"

	metamod "socialnorm/internal/services/api/meta/module"
	diagmod "socialnorm/internal/services/diagnostics/module"
	normmod "socialnorm/internal/services/normalizer/module"
	queuemod "socialnorm/internal/services/queue/module"

	"github.com/go-chi/chi/v5"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules read CORE_<MODULE>_ under it and the
	// HTTP stack reads CORE_API_
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Service        string
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// API is what Mount built; Close flushes module state on shutdown
type API struct {
	diag *diagmod.Module
	mods []module.Module
}

// RootStack installs the base middleware and the access log on the server mux
func RootStack(cfg config.Conf) func(*chi.Mux) {
	return func(m *chi.Mux) {
		m.Use(middleware.Defaults(cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second))...)
		m.Use(middleware.AccessLog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("SLOW_REQUEST", time.Second),
			Skip: []string{"/metrics", "/api/v1/meta/health", "/api/v1/meta/ready"},
		}))
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *API {
	var log logger.Logger
	if opt.Logger != nil {
		log = *opt.Logger
	} else {
		log = *logger.Get()
	}
	if opt.Service == "" {
		opt.Service = "socialnorm-api"
	}
	core := opt.Config.Prefix("CORE_")
	deps := modkit.FromStore(core, log, opt.Store)

	// diagnostics first, its ports feed the normalizer
	diag := diagmod.New(deps)
	dp := module.MustPortsOf[diagmod.Ports](diag)

	norm := normmod.New(deps, modkit.WithPorts(normmod.Needs{
		Observer: dp.Observer,
		Failures: dp.Failures,
		Stats:    dp.Stats,
	}))

	mods := []module.Module{
		metamod.New(deps, opt.Service),
		diag,
		norm,
	}
	if deps.RDS != nil {
		// enqueue side only, the worker binary runs the loop
		mods = append(mods, queuemod.New(deps))
	} else {
		log.Info().Msg("redis disabled, queue routes not mounted")
	}

	if dp.Metrics != nil && opt.EnableMetrics {
		r.Handle("/metrics", dp.Metrics)
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	stack := httpkit.CommonStack(httpkit.StackFromConfig(opt.Config.Prefix("CORE_API_")))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return &API{diag: diag, mods: mods}
}

// Modules lists the mounted modules in mount order
func (a *API) Modules() []module.Module { return a.mods }

// Close flushes buffered diagnostics
func (a *API) Close(ctx context.Context) error {
	if a == nil || a.diag == nil {
		return nil
	}
	return a.diag.Close(ctx)
}

// Routes lists METHOD path for every route on mux, handy for startup logs
func Routes(mux http.Handler) []string {
	cm, ok := mux.(chi.Routes)
	if !ok {
		return nil
	}
	var out []string
	_ = chi.Walk(cm, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, method+" "+route)
		return nil
	})
	return out
}
