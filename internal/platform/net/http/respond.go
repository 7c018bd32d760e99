// Package http wraps chi and the response conventions shared by every endpoint
//
// Errors always go out as the pnet.Wire envelope. Successful responses are either
// wrapped in the same envelope (OK, Data) or written verbatim (Raw) when the body is
// already the wire format, as with normalized documents.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "socialnorm/internal/platform/net"
)

// ContentTypeJSON is the content type for every JSON body we emit
const ContentTypeJSON = "application/json"

// JSON writes v compactly with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// Raw writes a prepared body; header values are added before the status line
func Raw(w stdhttp.ResponseWriter, status int, header stdhttp.Header, body []byte) {
	for k, vv := range header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == 0 {
		status = stdhttp.StatusOK
	}
	w.WriteHeader(status)
	if len(body) > 0 && status != stdhttp.StatusNoContent {
		_, _ = w.Write(body)
	}
}

// RespondOK writes data inside the 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, env := pnet.OK(data, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// RespondError writes err as the error envelope with its mapped status
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// Response is the return-style result of a handler
// Exactly one of Err, RawBody or Body is used, in that order
type Response struct {
	Status  int
	Header  stdhttp.Header
	Body    any
	RawBody []byte
	Err     error
}

// Handle adapts a Response returning func to a Handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	switch {
	case resp.Err != nil:
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		RespondError(w, r, resp.Err)
	case resp.RawBody != nil:
		Raw(w, resp.Status, resp.Header, resp.RawBody)
	case resp.Status == stdhttp.StatusNoContent:
		Raw(w, resp.Status, resp.Header, nil)
	default:
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
		_, env := pnet.OK(resp.Body, pnet.RequestID(r.Context()))
		env.StatusCode, env.Status = status, stdhttp.StatusText(status)
		JSON(w, status, env)
	}
}

// OK wraps data in a 200 envelope
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Err: err} }

// Bytes writes body verbatim with the given status and content type
func Bytes(status int, contentType string, body []byte) Response {
	h := stdhttp.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	if body == nil {
		body = []byte{}
	}
	return Response{Status: status, Header: h, RawBody: body}
}

// NoContent is a bodiless 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }
