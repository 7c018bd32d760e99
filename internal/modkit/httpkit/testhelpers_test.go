package httpkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "socialnorm/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() (Router, *chi.Mux) {
	m := chi.NewRouter()
	return phttp.AdaptChi(m), m
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
