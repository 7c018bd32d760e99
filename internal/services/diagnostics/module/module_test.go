package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"socialnorm/internal/core/canonical"
	"socialnorm/internal/core/normalize"
	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/module"
	"socialnorm/internal/platform/config"
	phttp "socialnorm/internal/platform/net/http"
	kit "socialnorm/internal/platform/testkit"
	"socialnorm/internal/services/diagnostics/domain"

	"github.com/go-chi/chi/v5"
)

func TestFromConfig(t *testing.T) {
	kit.Env(t, map[string]string{
		"CORE_DIAG_LOG":         "false",
		"CORE_DIAG_PERSIST":     "false",
		"CORE_DIAG_BATCH_SIZE":  "50",
		"CORE_DIAG_FLUSH_EVERY": "250ms",
	})
	o := FromConfig(config.New().Prefix("CORE_"))
	if o.Log || o.Persist || !o.Tally || !o.Metrics {
		t.Fatalf("flags = %+v", o)
	}
	if o.BatchSize != 50 || o.FlushEvery != 250*time.Millisecond || o.Table != "socialnorm.normalize_events" {
		t.Fatalf("options = %+v", o)
	}
}

func TestNewWith_TallyAndMetrics(t *testing.T) {
	m := NewWith(modkit.Deps{}, Options{Tally: true, Metrics: true, Namespace: "t", Persist: true})
	p := module.MustPortsOf[Ports](m)
	if p.Metrics == nil {
		t.Fatal("metrics handler should be exposed")
	}

	ctx := context.Background()
	p.Observer.Observe(ctx, normalize.Diagnostic{Platform: canonical.PlatformReddit, Type: canonical.TypePost, Subreddit: "AskAus", Count: 1})
	p.Failures.Failed(ctx, "bluesky", canonical.UnsupportedType("like"))

	snap := p.Stats.Snapshot(domain.StatsFilter{})
	if snap.Total != 1 || snap.Failed["bluesky:unsupported_type"] != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}

	rr := httptest.NewRecorder()
	p.Metrics.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	kit.MustContain(t, rr.Body.String(), `t_normalized_total{platform="reddit",type="post"} 1`)

	// persistence was asked for but no clickhouse is wired
	if _, err := p.Events.Top(ctx, domain.TopInput{}); err == nil {
		t.Fatal("top without storage should fail")
	}
	if err := m.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRoutes_TopUnavailable(t *testing.T) {
	m := NewWith(modkit.Deps{}, Options{})
	if m.Name() != "diagnostics" || m.Prefix() != "/diagnostics" {
		t.Fatalf("name/prefix = %s %s", m.Name(), m.Prefix())
	}
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/diagnostics/top", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/diagnostics/top?by=author", nil))
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), `"field":"by"`) {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}
}
