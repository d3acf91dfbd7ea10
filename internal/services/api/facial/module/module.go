// Package module wires the facial flows into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"

	fhttp "github.com/DeboraAmaral/sprint04-iot/internal/services/api/facial/http"
	capdom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"
	enrolldom "github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/domain"
	resolvedom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
	stilldom "github.com/DeboraAmaral/sprint04-iot/internal/services/still/domain"
)

// Ports declares the injected worker ports this API module fronts
type Ports struct {
	Capture  capdom.CapturePort
	Resolver resolvedom.ResolvePort
	Still    stilldom.StillPort
	Enroll   enrolldom.EnrollPort
}

// Module implements the facial API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the facial module. The worker ports must be injected
// via modkit.WithPorts.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("facial"),
		modkit.WithPrefix(""),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Capture == nil || injected.Resolver == nil {
		panic("facial API module requires Capture and Resolver ports")
	}
	if injected.Still == nil || injected.Enroll == nil {
		panic("facial API module requires Still and Enroll ports")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     injected,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		fhttp.Register(r, fhttp.Deps{
			Capture:  injected.Capture,
			Resolver: injected.Resolver,
			Still:    injected.Still,
			Enroll:   injected.Enroll,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Middlewares returns the module middleware chain
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
