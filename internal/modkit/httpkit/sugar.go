package httpkit

import (
	"net/http"
)

// Get registers a no-body handler whose result is wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a no-body handler whose result is wrapped in the envelope
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON mounts a bound and validated JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// GetRaw mounts a Response returning handler under GET
func GetRaw(r Router, path string, h func(*http.Request) Response) {
	r.Get(path, Handle(h))
}

// PostRaw mounts a Response returning handler under POST
// use it when the body is already the wire format
func PostRaw(r Router, path string, h func(*http.Request) Response) {
	r.Post(path, Handle(h))
}
