// Package api provides the local HTTP API for the agent
package api

import (
	"context"
	"sync"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/config"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
	phttp "github.com/DeboraAmaral/sprint04-iot/internal/platform/net/http"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/accounts"
	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"

	"github.com/DeboraAmaral/sprint04-iot/internal/modkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/module"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/swaggerkit"

	apifacial "github.com/DeboraAmaral/sprint04-iot/internal/services/api/facial/module"
	metamod "github.com/DeboraAmaral/sprint04-iot/internal/services/api/meta/module"

	capturemod "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/module"
	enrollmod "github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/module"
	resolvedom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
	resolvemod "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/module"
	stillmod "github.com/DeboraAmaral/sprint04-iot/internal/services/still/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Navigator receives the post-login home redirect; nil means no
	// UI shell is attached
	Navigator resolvedom.Navigator
}

// Mount wires the worker modules and mounts the API onto the router.
// The returned teardown stops the capture session and closes the
// resolver; callers run it when the agent shuts down.
func Mount(ctx context.Context, r phttp.Router, opt Options) (func(), error) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		DB:  opt.Store.DB,
	}

	faceCfg := opt.Config.Prefix("FACEAPI_")
	face := faceapi.NewClient(faceapi.Options{
		BaseURL:    faceCfg.MayString("BASE_URL", "http://localhost:8000"),
		Timeout:    faceCfg.MayDuration("TIMEOUT", 0),
		MaxRetries: faceCfg.MayInt("MAX_RETRIES", 0),
		RetryBase:  faceCfg.MayDuration("RETRY_BASE", 0),
	})

	acctCfg := opt.Config.Prefix("ACCOUNTS_")
	acct := accounts.NewClient(accounts.Options{
		BaseURL: acctCfg.MayString("BASE_URL", "http://localhost:3001"),
		Timeout: acctCfg.MayDuration("TIMEOUT", 0),
	})

	// worker modules first; the API modules front their ports.
	// capture and resolve are mutually wired through their ports: the
	// capture gate feeds resolve's entry condition and resolve is the
	// capture loop's handoff target.
	g := &lateGate{}
	resolver, err := resolvemod.New(ctx, deps, acct, g, opt.Navigator, resolvemod.Options{})
	if err != nil {
		return nil, err
	}
	resolvePorts := resolver.Ports().(resolvemod.Ports)

	capture, err := capturemod.New(deps, face, resolvePorts.Resolver, capturemod.Options{})
	if err != nil {
		return nil, err
	}
	capturePorts := capture.Ports().(capturemod.Ports)
	g.set(capturePorts.Gate)

	still := stillmod.New(deps, face, acct, resolvePorts.DeviceSecret)
	stillPorts := still.Ports().(stillmod.Ports)

	enroll := enrollmod.New(deps, face)
	enrollPorts := enroll.Ports().(enrollmod.Ports)

	facial := apifacial.New(
		deps,
		modkit.WithPorts(apifacial.Ports{
			Capture:  capturePorts.Capture,
			Resolver: resolvePorts.Resolver,
			Still:    stillPorts.Still,
			Enroll:   enrollPorts.Enroll,
		}),
	)

	meta := metamod.New(
		deps,
		modkit.WithPorts(metamod.Ports{Backend: face}),
	)

	mods := []module.Module{
		meta,
		capture,
		resolver,
		still,
		enroll,
		facial,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		r.Handle("/metrics", promhttp.Handler())

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	teardown := func() {
		capturePorts.Capture.Stop()
		resolvePorts.Resolver.Close()
	}
	return teardown, nil
}

// lateGate breaks the construction cycle between capture and resolve:
// resolve needs the poller gate before the capture module exists. An
// unset gate reports stopped so the still path can resolve freely.
type lateGate struct {
	mu sync.Mutex
	g  interface{ PollerStopped() bool }
}

func (l *lateGate) set(g interface{ PollerStopped() bool }) {
	l.mu.Lock()
	l.g = g
	l.mu.Unlock()
}

func (l *lateGate) PollerStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.g == nil {
		return true
	}
	return l.g.PollerStopped()
}
