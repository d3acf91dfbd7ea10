// Package module wires the resolve service over the embedded credential store
package module

import (
	"context"
	"crypto/rand"

	"github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
	"github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/repo"
	"github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/service"
)

// Module defines the resolve module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the resolve module. It prepares the credential schema
// and establishes the device secret before the service is usable.
func New(ctx context.Context, deps modkit.Deps, provider service.Provider, gate service.Gate, nav dom.Navigator, overrides Options) (*Module, error) {
	if deps.DB == nil {
		return nil, perr.DBf("resolve requires the embedded database")
	}

	opts := FromConfig(deps.Cfg)
	if overrides.RedirectDelay != 0 {
		opts.RedirectDelay = overrides.RedirectDelay
	}
	if overrides.DeviceSecret != "" {
		opts.DeviceSecret = overrides.DeviceSecret
	}

	r := repo.NewSQLite().Bind(deps.DB)
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	secret, err := r.GetOrCreateDeviceSecret(ctx, secretCandidate(opts.DeviceSecret))
	if err != nil {
		return nil, err
	}

	svc := service.New(deps.DB, provider, gate, nav, service.Config{
		RedirectDelay: opts.RedirectDelay,
		DeviceSecret:  secret,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Resolver: svc, DeviceSecret: secret}
	return m, nil
}

// secretCandidate prefers the configured secret; otherwise a random
// one is generated. Only the first boot's candidate is persisted.
func secretCandidate(configured string) []byte {
	if configured != "" {
		return []byte(configured)
	}
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

// Ports returns the module ports (Resolver)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "resolve" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; the api module fronts resolve
func (m *Module) MountRoutes(_ httpkit.Router) {}
