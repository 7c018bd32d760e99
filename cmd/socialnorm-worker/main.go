package main

import (
	"context"
	stderrs "errors"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/module"
	"socialnorm/internal/platform/config"
	"socialnorm/internal/platform/logger"
	"socialnorm/internal/platform/store"

	diagmod "socialnorm/internal/services/diagnostics/module"
	normmod "socialnorm/internal/services/normalizer/module"
	queuemod "socialnorm/internal/services/queue/module"
)

func main() {
	_, envErr := config.LoadEnv()
	root := config.New()
	core := root.Prefix("CORE_")
	l := logger.Named("worker")
	if envErr != nil {
		l.Warn().Err(envErr).Msg("env file not loaded")
	}

	var (
		fConc    = flag.Int("concurrency", 0, "worker goroutines (overrides CORE_WORKER_CONCURRENCY)")
		fTimeout = flag.Duration("pop_timeout", 0, "BLPOP timeout (overrides CORE_WORKER_POP_TIMEOUT)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the worker cannot run without redis
	if os.Getenv("SERVICE_REDIS_ENABLED") == "" {
		_ = os.Setenv("SERVICE_REDIS_ENABLED", strconv.FormatBool(true))
	}
	st, err := store.Open(ctx, store.FromEnv(root, "worker"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.FromStore(core, *l, st)

	diag := diagmod.New(deps)
	dp := module.MustPortsOf[diagmod.Ports](diag)
	norm := normmod.New(deps, modkit.WithPorts(normmod.Needs{
		Observer: dp.Observer,
		Failures: dp.Failures,
		Stats:    dp.Stats,
	}))
	np := module.MustPortsOf[normmod.Ports](norm)

	qopts := queuemod.FromConfig(core)
	if *fConc > 0 {
		qopts.Workers = *fConc
	}
	if *fTimeout > 0 {
		qopts.PopTimeout = *fTimeout
	}
	q := queuemod.NewWith(deps, qopts, modkit.WithPorts(queuemod.Needs{Normalizer: np.Service}))
	for _, m := range []module.Module{diag, norm, q} {
		module.Register(m.Name(), m.Ports())
	}

	runErr := module.MustPortsOf[queuemod.Ports](q).Worker.Run(ctx)

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := diag.Close(flushCtx); err != nil {
		l.Error().Err(err).Msg("diagnostics flush failed")
	}
	if runErr != nil && !stderrs.Is(runErr, context.Canceled) {
		l.Fatal().Err(runErr).Msg("queue worker failed")
	}
}
