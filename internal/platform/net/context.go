// Package net carries transport neutral request metadata and the response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey struct{}

var keyPlatform ctxKey

// WithRequest stores the request id where chi's middleware expects it and the
// platform being normalized
func WithRequest(ctx context.Context, reqID, platform string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if platform != "" {
		ctx = context.WithValue(ctx, keyPlatform, platform)
	}
	return ctx
}

// RequestID returns the request id on ctx, "" when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Platform returns the platform routing value on ctx, "" when absent
func Platform(ctx context.Context) string {
	s, _ := ctx.Value(keyPlatform).(string)
	return s
}
