package httpkit

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"socialnorm/internal/platform/config"
	kit "socialnorm/internal/platform/testkit"
)

func TestCommonStack_CORSAndDecompress(t *testing.T) {
	stack := CommonStack(StackOptions{})
	if len(stack) != 2 {
		t.Fatalf("stack len = %d, want cors and decompress only", len(stack))
	}

	r, mux := newRouter()
	MountUnder(r, "/api", stack, func(api Router) {
		api.Post("/echo", func(w http.ResponseWriter, req *http.Request) {
			b, _ := io.ReadAll(req.Body)
			_, _ = w.Write(b)
		})
	})

	var zipped bytes.Buffer
	zw := gzip.NewWriter(&zipped)
	_, _ = zw.Write([]byte(`{"type":"post"}`))
	_ = zw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/echo", &zipped)
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Origin", "https://example.org")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Body.String() != `{"type":"post"}` {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("cors header missing: %v", rr.Header())
	}
}

func TestCommonStack_Throttle(t *testing.T) {
	if got := len(CommonStack(StackOptions{Throttle: 4})); got != 3 {
		t.Fatalf("throttle should add a layer, len = %d", got)
	}
}

func TestCommonStack_UnknownEncoding(t *testing.T) {
	r, mux := newRouter()
	MountUnder(r, "/api", CommonStack(StackOptions{}), func(api Router) {
		api.Post("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	rr := do(t, mux, http.MethodPost, "/api/x", "abc", "Content-Encoding", "br")
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestStackFromConfig(t *testing.T) {
	kit.Env(t, map[string]string{
		"CORE_API_CORS_ORIGINS":       "https://a.example, https://b.example",
		"CORE_API_MAX_INFLATED_BYTES": "1024",
		"CORE_API_THROTTLE_LIMIT":     "8",
	})
	o := StackFromConfig(config.New().Prefix("CORE_API_"))
	if strings.Join(o.CORS.AllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("origins = %v", o.CORS.AllowedOrigins)
	}
	if o.MaxInflated != 1024 || o.Throttle != 8 {
		t.Fatalf("opts = %+v", o)
	}
}
