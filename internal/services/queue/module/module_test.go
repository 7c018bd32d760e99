package module_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"socialnorm/internal/modkit"
	"socialnorm/internal/modkit/module"
	"socialnorm/internal/platform/config"
	phttp "socialnorm/internal/platform/net/http"
	kit "socialnorm/internal/platform/testkit"
	"socialnorm/internal/services/queue/domain"
	qmod "socialnorm/internal/services/queue/module"

	"github.com/go-chi/chi/v5"
)

func TestFromConfig(t *testing.T) {
	kit.Env(t, map[string]string{
		"CORE_WORKER_CONCURRENCY":    "8",
		"CORE_WORKER_PLATFORMS":      "reddit",
		"CORE_WORKER_KEY_PREFIX":     "sn",
		"CORE_WORKER_SETTLE_TIMEOUT": "750ms",
	})
	o := qmod.FromConfig(config.New().Prefix("CORE_"))
	if o.Workers != 8 || len(o.Platforms) != 1 || o.Prefix != "sn" || o.Settle != 750*time.Millisecond {
		t.Fatalf("options = %+v", o)
	}
}

func TestNew_RequiresRedis(t *testing.T) {
	kit.MustPanic(t, func() { qmod.New(modkit.Deps{}) })
}

func TestRoutes(t *testing.T) {
	_, rdb := kit.Redis(t)
	m := qmod.NewWith(modkit.Deps{RDS: rdb}, qmod.Options{Prefix: "x"})
	ports := module.MustPortsOf[qmod.Ports](m)
	if ports.Worker == nil || ports.Enqueuer == nil {
		t.Fatalf("ports = %+v", ports)
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/queue/reddit", strings.NewReader(`{"type":"post"}`)))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("enqueue status %d body %s", rr.Code, rr.Body.String())
	}
	var env struct {
		StatusCode int                  `json:"status_code"`
		Data       domain.EnqueueResult `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil || env.StatusCode != 202 || env.Data.Queue != "x:in:reddit" {
		t.Fatalf("envelope = %+v %v", env, err)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/queue/orkut", strings.NewReader(`{}`)))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown platform status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/queue/stats", nil))
	var stats struct {
		Data domain.Stats `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil || stats.Data.In["reddit"] != 1 {
		t.Fatalf("stats = %s %v", rr.Body.String(), err)
	}
}
