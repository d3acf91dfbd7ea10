// Package module wires the enrollment service
package module

import (
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/domain"
	"github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/service"
)

// Module defines the enroll module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// Ports holds the ports exposed by the enroll module
type Ports struct {
	Enroll dom.EnrollPort
}

// New constructs the enroll module
func New(deps modkit.Deps, registrar service.Registrar) *Module {
	m := &Module{deps: deps}
	m.ports = Ports{Enroll: service.New(registrar)}
	return m
}

// Ports returns the module ports (Enroll)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "enroll" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; the api module fronts enroll
func (m *Module) MountRoutes(_ httpkit.Router) {}
