// @title         socialnorm API
// @version       0.1.0
// @description   Normalizes Bluesky and Reddit records into one canonical post and comment document

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialnorm/internal/platform/config"
	"socialnorm/internal/platform/logger"
	phttp "socialnorm/internal/platform/net/http"
	"socialnorm/internal/platform/store"

	"socialnorm/internal/services/api"
)

func main() {
	loaded, envErr := config.LoadEnv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	if envErr != nil {
		l.Warn().Err(envErr).Msg("env file not loaded")
	} else if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("env files loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// clickhouse and redis are both optional (SERVICE_CLICKHOUSE_ENABLED, SERVICE_REDIS_ENABLED)
	st, err := store.Open(ctx, store.FromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT and the timeouts)
	srv := phttp.NewServer(apiCfg, api.RootStack(apiCfg))

	a := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Service:        "socialnorm-api",
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)
	for _, r := range api.Routes(srv.Router().Mux()) {
		l.Debug().Str("route", r).Msg("route mounted")
	}

	runErr := srv.Run(ctx)

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(flushCtx); err != nil {
		l.Error().Err(err).Msg("diagnostics flush failed")
	}
	if runErr != nil {
		l.Panic().Err(runErr).Msg("http server stopped")
	}
}
