// Package service implements the diagnostics observers
package service

import (
	"errors"

	"socialnorm/internal/core/canonical"
)

// Reason buckets a normalization failure for counters and tallies
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, canonical.ErrMalformedInput):
		return "malformed"
	case errors.Is(err, canonical.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, canonical.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, canonical.ErrUnknownPlatform):
		return "unknown_platform"
	}
	return "other"
}
