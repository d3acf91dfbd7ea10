// Package service implements one-shot upload verification
package service

import (
	"context"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"
	"github.com/DeboraAmaral/sprint04-iot/internal/core/identity"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/still/domain"
)

// Verifier verifies a non-live still against the backend
type Verifier interface {
	VerifyStill(ctx context.Context, imageDataURL string) (faceapi.VerifyResult, error)
}

// Provider authenticates derived credentials against the account backend
type Provider interface {
	Login(ctx context.Context, email, password string) (bool, error)
}

// Svc implements dom.StillPort
type Svc struct {
	verifier Verifier
	provider Provider
	secret   []byte
	log      logger.Logger
}

// New constructs the still verification service
func New(verifier Verifier, provider Provider, deviceSecret []byte) *Svc {
	return &Svc{
		verifier: verifier,
		provider: provider,
		secret:   deviceSecret,
		log:      *logger.Named("still"),
	}
}

// Authenticate verifies one uploaded frame and logs the account in.
// Unrecognized faces are a NoMatch error; this path never provisions.
func (s *Svc) Authenticate(ctx context.Context, imageDataURL string) (dom.Result, error) {
	if imageDataURL == "" {
		return dom.Result{}, perr.InvalidArgf("image is required")
	}

	res, err := s.verifier.VerifyStill(ctx, imageDataURL)
	out := faceapi.Classify(res, err)

	switch out.Kind {
	case faceapi.KindTransportError:
		return dom.Result{}, perr.Wrapf(out.Err, perr.ErrorCodeUnavailable, "verification backend unreachable")
	case faceapi.KindNoFace:
		return dom.Result{Outcome: out.Kind.String()}, perr.NoMatchf("no face detected in the uploaded image")
	case faceapi.KindFaceUnverified:
		return dom.Result{Outcome: out.Kind.String()}, perr.NoMatchf("face not recognized")
	}

	creds, err := identity.Derive(out.Identity, s.secret)
	if err != nil {
		return dom.Result{}, perr.Wrapf(err, perr.ErrorCodeResolutionFailed, "credential derivation failed")
	}

	ok, err := s.provider.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return dom.Result{}, perr.Wrapf(err, perr.ErrorCodeResolutionFailed, "login transport failed")
	}
	if !ok {
		// recognized but unprovisioned; only the live flow creates accounts
		return dom.Result{Outcome: out.Kind.String(), Identity: creds.Identity},
			perr.NoMatchf("no account for recognized identity %s", creds.Identity)
	}

	s.log.Info().Str("identity", creds.Identity).Msg("still verification authenticated")
	return dom.Result{
		Outcome:  out.Kind.String(),
		Identity: creds.Identity,
		Email:    creds.Email,
	}, nil
}
