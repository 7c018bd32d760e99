package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"socialnorm/internal/platform/config"
	phttp "socialnorm/internal/platform/net/http"
	"socialnorm/internal/platform/store"
	kit "socialnorm/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func newAPI(t *testing.T, st *store.Store) (http.Handler, *API) {
	t.Helper()
	kit.Serial(t)
	kit.Env(t, map[string]string{"CORE_DIAG_LOG": "false"})
	mux := chi.NewRouter()
	RootStack(config.New().Prefix("CORE_API_"))(mux)
	a := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		Store:         st,
		EnableSwagger: true,
		EnableMetrics: true,
	})
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return mux, a
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMount_NoBackends(t *testing.T) {
	h, a := newAPI(t, nil)

	rr := call(h, http.MethodPost, "/api/v1/normalize/reddit",
		`{"type":"comment","subreddit":"sydney","data":{"id":"k","post_id":"p","body":"x","score":1}}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"post_id": "reddit_post_p"`) {
		t.Fatalf("normalize = %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("headers = %v", rr.Header())
	}

	rr = call(h, http.MethodGet, "/api/v1/normalize/stats", "")
	kit.MustContain(t, rr.Body.String(), `"total":1`)

	rr = call(h, http.MethodGet, "/metrics", "")
	kit.MustContain(t, rr.Body.String(), `socialnorm_normalized_total{platform="reddit",type="comment"} 1`)

	if rr := call(h, http.MethodGet, "/api/v1/meta/ready", ""); rr.Code != http.StatusOK {
		t.Fatalf("ready = %d", rr.Code)
	}
	if rr := call(h, http.MethodPost, "/api/v1/queue/reddit", `{}`); rr.Code != http.StatusNotFound {
		t.Fatalf("queue should not be mounted without redis, got %d", rr.Code)
	}
	if rr := call(h, http.MethodGet, "/api/docs/doc.json", ""); rr.Code != http.StatusOK {
		t.Fatalf("docs = %d", rr.Code)
	}

	names := make([]string, 0, len(a.Modules()))
	for _, m := range a.Modules() {
		names = append(names, m.Name())
	}
	if !slices.Equal(names, []string{"meta", "diagnostics", "normalizer"}) {
		t.Fatalf("modules = %v", names)
	}
}

func TestMount_WithRedis(t *testing.T) {
	_, rdb := kit.Redis(t)
	h, _ := newAPI(t, &store.Store{RDS: rdb})

	if rr := call(h, http.MethodPost, "/api/v1/queue/bluesky", `{"type":"post"}`); rr.Code != http.StatusAccepted {
		t.Fatalf("enqueue = %d %s", rr.Code, rr.Body.String())
	}
	routes := Routes(h)
	if !slices.Contains(routes, "GET /api/v1/queue/stats") {
		t.Fatalf("routes = %v", routes)
	}
}

func TestClose_NilSafe(t *testing.T) {
	var a *API
	if err := a.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
}
