package httpkit

import (
	"net/http"
	"testing"

	perr "socialnorm/internal/platform/errors"
	kit "socialnorm/internal/platform/testkit"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func TestCall_WrapsValueAndErrors(t *testing.T) {
	r, mux := newRouter()
	r.Get("/ok", Call(func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil }))
	r.Get("/bad", Call(func(*http.Request) (any, error) { return nil, perr.NotFoundf("nope") }))

	rr := do(t, mux, http.MethodGet, "/ok", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"data":{"n":1}`)

	rr = do(t, mux, http.MethodGet, "/bad", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"error":"nope"`)
}

func TestJSON_BindsAndValidates(t *testing.T) {
	r, mux := newRouter()
	r.Post("/echo", JSON(func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil }))

	rr := do(t, mux, http.MethodPost, "/echo", `{"name":"kit"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body)
	}
	kit.MustContain(t, rr.Body.String(), `"data":"kit"`)

	rr = do(t, mux, http.MethodPost, "/echo", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing name status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"field":"name"`)

	rr = do(t, mux, http.MethodPost, "/echo", `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("broken json status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"error":"Invalid JSON"`)
}

func TestHandle_BytesAndNoContent(t *testing.T) {
	r, mux := newRouter()
	r.Get("/raw", Handle(func(*http.Request) Response {
		return Bytes(http.StatusOK, "application/json", []byte("{\n  \"a\": 1\n}"))
	}))
	r.Get("/none", Handle(func(*http.Request) Response { return NoContent() }))
	r.Get("/err", Handle(func(*http.Request) Response { return Error(perr.New(perr.ErrorCodeValidation, "Unsupported type")) }))
	r.Get("/ok", Handle(func(*http.Request) Response { return OK(true) }))

	if rr := do(t, mux, http.MethodGet, "/raw", ""); rr.Body.String() != "{\n  \"a\": 1\n}" {
		t.Fatalf("raw body = %q", rr.Body.String())
	}
	if rr := do(t, mux, http.MethodGet, "/none", ""); rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rr.Code, rr.Body.String())
	}
	if rr := do(t, mux, http.MethodGet, "/err", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("err status = %d", rr.Code)
	}
	if rr := do(t, mux, http.MethodGet, "/ok", ""); rr.Code != http.StatusOK {
		t.Fatalf("ok status = %d", rr.Code)
	}
}

func TestURLParam(t *testing.T) {
	r, mux := newRouter()
	var got string
	r.Get("/p/{platform}", func(w http.ResponseWriter, req *http.Request) {
		got = URLParam(req, "platform")
		w.WriteHeader(http.StatusOK)
	})
	do(t, mux, http.MethodGet, "/p/reddit", "")
	if got != "reddit" {
		t.Fatalf("param = %q", got)
	}
}
