// Package module wires the one-shot upload verification service
package module

import (
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"

	"github.com/DeboraAmaral/sprint04-iot/internal/services/still/service"
)

// Module defines the still verification module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the still module. The device secret must be the same
// one the resolve module persisted so derivations line up.
func New(deps modkit.Deps, verifier service.Verifier, provider service.Provider, deviceSecret []byte) *Module {
	svc := service.New(verifier, provider, deviceSecret)
	m := &Module{deps: deps}
	m.ports = Ports{Still: svc}
	return m
}

// Ports returns the module ports (Still)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "still" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; the api module fronts still
func (m *Module) MountRoutes(_ httpkit.Router) {}
