// Package module wires the capture session service and exposes its ports
package module

import (
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/camera"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"
	"github.com/DeboraAmaral/sprint04-iot/internal/services/capture/service"
)

// Module defines the capture session module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the capture module. The verifier comes from the
// shared faceapi client; the resolver is the resolve module's port.
func New(deps modkit.Deps, verifier service.Verifier, resolver dom.Resolver, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	if overrides.Interval != 0 {
		opts.Interval = overrides.Interval
	}
	if overrides.MaxWidth != 0 {
		opts.MaxWidth = overrides.MaxWidth
	}
	if overrides.JPEGQuality != 0 {
		opts.JPEGQuality = overrides.JPEGQuality
	}
	if overrides.BackoffAfter != 0 {
		opts.BackoffAfter = overrides.BackoffAfter
	}
	if overrides.MaxInterval != 0 {
		opts.MaxInterval = overrides.MaxInterval
	}
	if overrides.CameraSource != "" {
		opts.CameraSource = overrides.CameraSource
	}
	if overrides.CameraURL != "" {
		opts.CameraURL = overrides.CameraURL
	}
	if overrides.StillsDir != "" {
		opts.StillsDir = overrides.StillsDir
	}
	if overrides.WarmupTimeout != 0 {
		opts.WarmupTimeout = overrides.WarmupTimeout
	}

	opener, err := camera.OpenerFor(camera.Config{
		Source:        opts.CameraSource,
		URL:           opts.CameraURL,
		StillsDir:     opts.StillsDir,
		WarmupTimeout: opts.WarmupTimeout,
	})
	if err != nil {
		return nil, err
	}

	svc := service.New(opener, verifier, resolver, service.Config{
		Interval:     opts.Interval,
		MaxWidth:     opts.MaxWidth,
		JPEGQuality:  opts.JPEGQuality,
		BackoffAfter: opts.BackoffAfter,
		MaxInterval:  maxInterval(opts),
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Capture: svc,
		Gate:    svc,
	}
	return m, nil
}

func maxInterval(o Options) time.Duration {
	if o.MaxInterval < o.Interval {
		return 4 * o.Interval
	}
	return o.MaxInterval
}

// Ports returns the module ports (Capture, Gate)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "capture" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; the api module fronts capture
func (m *Module) MountRoutes(_ httpkit.Router) {}
