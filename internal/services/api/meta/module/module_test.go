package module

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialnorm/internal/modkit"
	phttp "socialnorm/internal/platform/net/http"
	"socialnorm/internal/platform/store"
	kit "socialnorm/internal/platform/testkit"
	metahttp "socialnorm/internal/services/api/meta/http"

	"github.com/go-chi/chi/v5"
)

type downCH struct{ store.Clickhouse }

func (downCH) Ping(context.Context) error { return errors.New("connection refused") }

func get(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: %v (%s)", path, err, rr.Body.String())
	}
	return rr.Code
}

func mount(deps modkit.Deps) http.Handler {
	mux := chi.NewRouter()
	New(deps, "socialnorm-test").MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func TestReady(t *testing.T) {
	_, rdb := kit.Redis(t)

	var ok metahttp.ReadyResponse
	get(t, mount(modkit.Deps{RDS: rdb}), "/meta/ready", &ok)
	if ok.Status != "ok" || len(ok.Checks) != 2 || ok.Checks[0].Status != "skipped" || ok.Checks[1].Status != "ok" {
		t.Fatalf("ready = %+v", ok)
	}

	var bad metahttp.ReadyResponse
	get(t, mount(modkit.Deps{RDS: rdb, CH: downCH{}}), "/meta/ready", &bad)
	if bad.Status != "fail" || bad.Checks[0].Error != "connection refused" {
		t.Fatalf("ready = %+v", bad)
	}
}

func TestInfoRoutes(t *testing.T) {
	h := mount(modkit.Deps{})

	var health metahttp.HealthResponse
	if code := get(t, h, "/meta/health", &health); code != 200 || !health.OK || health.Service != "socialnorm-test" {
		t.Fatalf("health = %d %+v", code, health)
	}
	var ver map[string]string
	get(t, h, "/meta/version", &ver)
	if ver["service"] != "socialnorm-test" || ver["version"] == "" {
		t.Fatalf("version = %v", ver)
	}
	var plats []string
	get(t, h, "/meta/platforms", &plats)
	if len(plats) != 2 || plats[0] != "bluesky" {
		t.Fatalf("platforms = %v", plats)
	}
	var svc metahttp.ServiceResponse
	get(t, h, "/meta/service", &svc)
	if svc.Name != "socialnorm-test" || svc.Uptime < 0 {
		t.Fatalf("service = %+v", svc)
	}
}
