// Package config reads service configuration from prefixed environment variables
//
// Must* accessors panic through the root logger when a value is missing or
// malformed, May* accessors warn and fall back to the supplied default.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"socialnorm/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. New().Prefix("CORE_API_")
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes concatenate
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// parser converts a non-empty raw value
type parser[T any] func(string) (T, error)

func must[T any](c Conf, k, what string, p parser[T]) T {
	s := c.lookup(k)
	if s == "" {
		logger.Get().Panic().Str("key", c.Key(k)).Msg("missing required env")
	}
	v, err := p(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(k)).Str("value", s).Msg("invalid " + what)
	}
	return v
}

func may[T any](c Conf, k, what string, def T, p parser[T]) T {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := p(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(k)).Str("value", s).Interface("default", def).
			Msg("invalid " + what + "; using default")
		return def
	}
	return v
}

func asString(s string) (string, error) { return s, nil }

func asPort(s string) (string, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return "", err
	}
	if p < 1 || p > 65535 {
		return "", strconv.ErrRange
	}
	return ":" + s, nil
}

func asAbsURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, &url.Error{Op: "parse", URL: s, Err: strconv.ErrSyntax}
	}
	return u, nil
}

// MustString panics if the key is missing or empty
func (c Conf) MustString(key string) string { return must(c, key, "string", asString) }

// MustInt panics if the key is missing or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustBool panics if the key is missing or not a bool
func (c Conf) MustBool(key string) bool { return must(c, key, "bool", strconv.ParseBool) }

// MustDuration panics if the key is missing or not a duration (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", time.ParseDuration)
}

// MustURL panics unless the key holds an absolute URL
func (c Conf) MustURL(key string) *url.URL { return must(c, key, "absolute URL", asAbsURL) }

// MustPort returns a listen addr like ":4000", the port must be 1..65535
func (c Conf) MustPort(key string) string { return must(c, key, "TCP port", asPort) }

// Require panics on the first missing key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.lookup(k) == "" {
			logger.Get().Panic().Str("key", c.Key(k)).Msg("missing required env")
		}
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, asString) }

// MayInt returns the value or def, warning on garbage
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, strconv.Atoi) }

// MayFloat64 returns the value or def, warning on garbage
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, "float64", def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def, warning on garbage
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, strconv.ParseBool) }

// MayDuration returns the value or def, warning on garbage
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, time.ParseDuration)
}

// MayPort returns ":<port>" or def, warning on garbage
func (c Conf) MayPort(key, def string) string { return may(c, key, "TCP port", def, asPort) }

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value (lowercased) when it is one of allowed, def when empty
// and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
