package httpkit

import (
	"net/http"
	"testing"
)

func tag(v string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tag", v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestMountAPI_PrefixAndMiddleware(t *testing.T) {
	r, mux := newRouter()
	MountAPI(r, "/v2/", []func(http.Handler) http.Handler{tag("scope")}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong1", nil })
	})

	rr := do(t, mux, http.MethodGet, "/api/v2/ping", "")
	if rr.Code != http.StatusOK || rr.Header().Get("X-Tag") != "scope" {
		t.Fatalf("v2 = %d %v", rr.Code, rr.Header())
	}
	rr = do(t, mux, http.MethodGet, "/api/v1/ping", "")
	if rr.Code != http.StatusOK || rr.Header().Get("X-Tag") != "" {
		t.Fatalf("v1 = %d %v", rr.Code, rr.Header())
	}
}

func TestMountUnder_MiddlewareScoped(t *testing.T) {
	r, mux := newRouter()
	MountUnder(r, "/a", []func(http.Handler) http.Handler{tag("a")}, func(sub Router) {
		Get(sub, "/x", func(*http.Request) (any, error) { return 1, nil })
	})
	Get(r, "/b", func(*http.Request) (any, error) { return 2, nil })

	if got := do(t, mux, http.MethodGet, "/a/x", "").Header().Get("X-Tag"); got != "a" {
		t.Fatalf("scoped tag = %q", got)
	}
	if got := do(t, mux, http.MethodGet, "/b", "").Header().Get("X-Tag"); got != "" {
		t.Fatalf("tag leaked outside scope: %q", got)
	}
}
