// Package bind decodes and validates request payloads
package bind

import (
	"encoding/json"
	stderrs "errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"socialnorm/internal/core/canonical"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a decoded body
const DefaultMaxBytes int64 = 8 << 20

// Validator bundles the validator with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *Validator
)

// Get returns the process validator, built on first use
func Get() *Validator {
	vOnce.Do(func() { vSvc = build() })
	return vSvc
}

func build() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "":
			if q, _, _ := strings.Cut(f.Tag.Get("query"), ","); q != "" {
				return q
			}
			return f.Name
		case "-":
			return f.Name
		}
		return name
	})
	_ = entrans.RegisterDefaultTranslations(v, trans)

	// platform: the value names a supported source platform
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, ok := canonical.ParsePlatform(fl.Field().String())
		return ok
	})
	_ = v.RegisterTranslation("platform", trans,
		func(t ut.Translator) error { return t.Add("platform", "{0} must be one of bluesky, reddit", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("platform", fe.Field())
			return msg
		},
	)
	return &Validator{V: v, Trans: trans}
}

// Options tunes ParseJSON
type Options struct {
	MaxBytes        int64 // 0 means DefaultMaxBytes
	DisallowUnknown bool
}

// ParseJSON decodes exactly one JSON value from the body into T and validates it
// Decode failures carry ErrorCodeJSON, rule failures ErrorCodeValidation with the field set
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	o := Options{DisallowUnknown: true}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("close request body")
		}
	}()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		if stderrs.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "Invalid JSON")
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct rules on v and returns a coded error naming the first bad field
func Validate(v any) error {
	err := Get().V.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if stderrs.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.Wrap(inv, perr.ErrorCodeUnknown, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if stderrs.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
