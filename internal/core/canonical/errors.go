package canonical

import (
	stderrs "errors"
	"fmt"

	perr "socialnorm/internal/platform/errors"
)

// Sentinels for errors.Is; the constructors below wrap them in coded project errors
var (
	ErrMalformedInput  = stderrs.New("malformed input")
	ErrUnsupportedType = stderrs.New("unsupported type")
	ErrUnknownType     = stderrs.New("unknown type")
	ErrUnknownPlatform = stderrs.New("unknown platform")
)

// Caller facing messages
const (
	MsgInvalidJSON     = "Invalid JSON"
	MsgUnsupportedType = "Unsupported type"
)

// TypeError carries the rejected discriminator value
type TypeError struct {
	Platform Platform
	Got      string
	kind     error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.kind, e.Platform, e.Got)
}

// Unwrap exposes the sentinel so errors.Is keeps working
func (e *TypeError) Unwrap() error { return e.kind }

// MalformedInput reports a body that is not a usable JSON object
func MalformedInput(cause error) error {
	if cause == nil {
		cause = ErrMalformedInput
	} else {
		cause = fmt.Errorf("%w: %w", ErrMalformedInput, cause)
	}
	return perr.Wrap(cause, perr.ErrorCodeJSON, MsgInvalidJSON)
}

// UnsupportedType rejects a Bluesky discriminator
func UnsupportedType(got string) error {
	te := &TypeError{Platform: PlatformBluesky, Got: got, kind: ErrUnsupportedType}
	return perr.Wrap(te, perr.ErrorCodeValidation, MsgUnsupportedType)
}

// UnknownType rejects a Reddit discriminator, the message echoes the value
func UnknownType(got string) error {
	te := &TypeError{Platform: PlatformReddit, Got: got, kind: ErrUnknownType}
	return perr.Wrap(te, perr.ErrorCodeValidation, "Unknown type: "+got)
}

// UnknownPlatform rejects a routing value that names no normalizer
func UnknownPlatform(got string) error {
	return perr.Wrap(ErrUnknownPlatform, perr.ErrorCodeNotFound, "Unknown platform: "+got)
}
