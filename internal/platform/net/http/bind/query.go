package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "socialnorm/internal/platform/errors"
)

// ParseQuery fills the `query` tagged fields of T from the URL query and validates it
// Supported kinds are string, bool and the signed ints; unknown keys are ignored
func ParseQuery[T any](r *http.Request) (T, error) {
	var zero, dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("ParseQuery needs a struct, got %s", rv.Kind())
	}
	q := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("query"), ",")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be a boolean", name), name)
			}
			f.SetBool(b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
			if err != nil {
				return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", name), name)
			}
			f.SetInt(n)
		default:
			return zero, perr.Internalf("ParseQuery: unsupported kind %s for %s", f.Kind(), name)
		}
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
