package httpkit

import (
	"net/http"
	"testing"

	kit "socialnorm/internal/platform/testkit"
)

func TestSugar_MountsVerbs(t *testing.T) {
	r, mux := newRouter()
	Get(r, "/g", func(*http.Request) (any, error) { return "g", nil })
	Post(r, "/p", func(*http.Request) (any, error) { return "p", nil })
	PostJSON(r, "/j", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
	GetRaw(r, "/gr", func(*http.Request) Response { return Bytes(http.StatusOK, "text/plain", []byte("gr")) })
	PostRaw(r, "/pr", func(*http.Request) Response { return Bytes(http.StatusAccepted, "text/plain", []byte("pr")) })

	cases := []struct {
		method, path, body string
		status             int
		want               string
	}{
		{http.MethodGet, "/g", "", http.StatusOK, `"data":"g"`},
		{http.MethodPost, "/p", "", http.StatusOK, `"data":"p"`},
		{http.MethodPost, "/j", `{"name":"x"}`, http.StatusOK, `"data":"x"`},
		{http.MethodGet, "/gr", "", http.StatusOK, "gr"},
		{http.MethodPost, "/pr", "", http.StatusAccepted, "pr"},
	}
	for _, c := range cases {
		rr := do(t, mux, c.method, c.path, c.body)
		if rr.Code != c.status {
			t.Fatalf("%s %s status = %d", c.method, c.path, rr.Code)
		}
		kit.MustContain(t, rr.Body.String(), c.want)
	}

	if rr := do(t, mux, http.MethodPost, "/g", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST on GET route = %d", rr.Code)
	}
}
