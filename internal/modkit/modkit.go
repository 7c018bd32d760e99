package modkit

import (
	"net/http"

	"socialnorm/internal/modkit/httpkit"
	"socialnorm/internal/modkit/module"
	str "socialnorm/internal/platform/strings"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module

// Base carries the built options and implements the routing half of Module
// modules embed it and add their own Ports
type Base struct {
	Built
}

// NewBase applies defaults then caller options; own is mounted before any
// WithRegister hook the caller passed
func NewBase(defaults []Option, opts []Option, own func(httpkit.Router)) Base {
	b := Build(append(defaults, opts...)...)
	external := b.Register
	b.Register = func(r httpkit.Router) {
		if own != nil {
			own(r)
		}
		external(r)
	}
	return Base{Built: b}
}

// MountRoutes mounts the module under its prefix with its own middleware
func (m Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.Mw, func(rr httpkit.Router) {
		m.Register(m.Subrouter(rr))
	})
}

// Name returns the module name
func (m Base) Name() string { return m.Built.Name }

// Prefix returns the module route prefix
func (m Base) Prefix() string { return str.MustPrefix(m.Built.Prefix) }

// Middlewares returns the module middlewares
func (m Base) Middlewares() []func(http.Handler) http.Handler { return m.Mw }

// Ports returns ports injected through WithPorts, modules usually override this
func (m Base) Ports() any { return m.Built.Ports }
