// Package service implements the identity resolution flow
package service

import (
	"context"
	"sync"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/core/identity"
	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/repokit"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/metrics"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
	rrepo "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/repo"

	"github.com/google/uuid"
)

// Provider authenticates derived credentials against the account backend
type Provider interface {
	Login(ctx context.Context, email, password string) (bool, error)
}

// Gate reports whether frame submission has stopped; resolution must
// not run concurrently with the poller
type Gate interface {
	PollerStopped() bool
}

// Config controls the resolution flow
type Config struct {
	// RedirectDelay is how long after success the home redirect fires
	RedirectDelay time.Duration

	// DeviceSecret keys the credential derivation
	DeviceSecret []byte
}

const defaultRedirectDelay = 2 * time.Second

// Svc implements dom.ResolvePort
type Svc struct {
	db       repokit.TxRunner
	binder   repokit.Binder[rrepo.Repo]
	provider Provider
	gate     Gate
	nav      dom.Navigator
	cfg      Config
	log      logger.Logger

	mu       sync.Mutex
	state    dom.State
	session  *dom.Session
	redirect *time.Timer
	closed   bool
}

// New constructs the resolve service
func New(db repokit.TxRunner, provider Provider, gate Gate, nav dom.Navigator, cfg Config) *Svc {
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = defaultRedirectDelay
	}
	return &Svc{
		db:       db,
		binder:   rrepo.NewSQLite(),
		provider: provider,
		gate:     gate,
		nav:      nav,
		cfg:      cfg,
		log:      *logger.Named("resolve"),
		state:    dom.StateIdle,
	}
}

// Resolve runs the flow for one recognized identity
func (s *Svc) Resolve(ctx context.Context, rawIdentity string) error {
	if s.gate != nil && !s.gate.PollerStopped() {
		return perr.PollerActivef("resolution refused while the poller is submitting")
	}

	s.mu.Lock()
	if s.session != nil {
		// a session is already committed; later identities lose
		s.mu.Unlock()
		s.log.Debug().Str("identity", rawIdentity).Msg("ignoring identity after committed session")
		return nil
	}
	s.state = dom.StateAuthenticating
	s.mu.Unlock()

	creds, err := identity.Derive(rawIdentity, s.cfg.DeviceSecret)
	if err != nil {
		return s.fail(rawIdentity, perr.Wrapf(err, perr.ErrorCodeResolutionFailed, "credential derivation failed"))
	}

	ok, err := s.provider.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		// the answer never arrived; terminal, not a provisioning trigger
		return s.fail(creds.Identity, perr.Wrapf(err, perr.ErrorCodeResolutionFailed, "login transport failed"))
	}

	if !ok {
		s.mu.Lock()
		s.state = dom.StateProvisioning
		s.mu.Unlock()

		if err := s.provision(ctx, creds); err != nil {
			return s.fail(creds.Identity, err)
		}

		ok, err = s.provider.Login(ctx, creds.Email, creds.Password)
		if err != nil {
			return s.fail(creds.Identity, perr.Wrapf(err, perr.ErrorCodeResolutionFailed, "login retry transport failed"))
		}
		if !ok {
			return s.fail(creds.Identity, perr.ResolutionFailedf("login rejected after provisioning"))
		}
	}

	return s.commit(ctx, creds)
}

// provision writes the facial credential if absent; a concurrent or
// earlier provision of the same identity is not an error
func (s *Svc) provision(ctx context.Context, creds identity.Credentials) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		inserted, err := r.InsertCredential(ctx, dom.Credential{
			Identity: creds.Identity,
			Email:    creds.Email,
			Password: creds.Password,
		})
		if err != nil {
			return err
		}
		if inserted {
			metrics.CredentialsProvisionedTotal.Inc()
			s.log.Info().Str("identity", creds.Identity).Msg("provisioned facial credential")
		}
		// read back the stored row so a pre-existing credential wins
		stored, err := r.GetCredential(ctx, creds.Identity)
		if err != nil {
			return err
		}
		if stored.Email != creds.Email || stored.Password != creds.Password {
			// derivation changed under a different device secret
			return perr.ResolutionFailedf("stored credential does not match derivation for %s", creds.Identity)
		}
		return nil
	})
}

// commit issues the local session exactly once and schedules the redirect.
// A login answer that lands after teardown is discarded, not committed.
func (s *Svc) commit(ctx context.Context, creds identity.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.log.Debug().Str("identity", creds.Identity).Msg("discarding resolution, context cancelled")
		return err
	}
	if s.closed {
		s.log.Debug().Str("identity", creds.Identity).Msg("discarding resolution after close")
		return nil
	}
	if s.session != nil {
		return nil // someone else won while we were logging in
	}
	s.session = &dom.Session{
		Token:    uuid.NewString(),
		Identity: creds.Identity,
		Email:    creds.Email,
		IssuedAt: time.Now().UTC(),
	}
	s.state = dom.StateSucceeded
	metrics.ResolutionsTotal.WithLabelValues("succeeded").Inc()
	s.log.Info().Str("identity", creds.Identity).Msg("session committed")

	if s.nav != nil && !s.closed {
		s.redirect = time.AfterFunc(s.cfg.RedirectDelay, s.nav.NavigateHome)
	}
	return nil
}

func (s *Svc) fail(identityName string, err error) error {
	s.mu.Lock()
	s.state = dom.StateFailed
	s.mu.Unlock()
	metrics.ResolutionsTotal.WithLabelValues("failed").Inc()
	s.log.Warn().Err(err).Str("identity", identityName).Msg("resolution failed")
	return err
}

// State returns the current resolution state
func (s *Svc) State() dom.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session returns the committed session, if any
func (s *Svc) Session() (dom.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return dom.Session{}, false
	}
	return *s.session, true
}

// Close cancels a pending redirect; part of screen teardown
func (s *Svc) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.redirect != nil {
		s.redirect.Stop()
		s.redirect = nil
	}
}
