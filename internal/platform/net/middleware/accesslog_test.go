package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialnorm/internal/platform/logger"
	"socialnorm/internal/platform/net/middleware"
)

func TestAccessLog_PassThrough(t *testing.T) {
	var sawRequestID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequestID = r.Header.Get("X-Request-ID")
		if logger.C(r.Context()) == nil {
			t.Errorf("nil request logger")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "ok")
	})
	h := chain(next,
		middleware.RequestID(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond, Skip: []string{"/metrics"}}),
	)

	for _, path := range []string{"/x", "/metrics"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Request-ID", "rid-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
			t.Fatalf("%s: %d %q", path, rec.Code, rec.Body.String())
		}
	}
	if sawRequestID != "rid-1" {
		t.Fatalf("request id = %q", sawRequestID)
	}
}

func TestAccessLog_ErrorStatus(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "x", http.StatusBadGateway)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}
