// Package service implements face enrollment against the backend
package service

import (
	"context"

	"github.com/DeboraAmaral/sprint04-iot/internal/core/identity"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/domain"
)

// Registrar submits a face registration to the verification backend
type Registrar interface {
	Register(ctx context.Context, userID, imageDataURL string) (string, error)
}

// Svc implements dom.EnrollPort
type Svc struct {
	registrar Registrar
	log       logger.Logger
}

// New constructs the enroll service
func New(registrar Registrar) *Svc {
	return &Svc{registrar: registrar, log: *logger.Named("enroll")}
}

// Register normalizes the user id and enrolls the still with the
// backend. The id is normalized so live verification later recognizes
// the same identity regardless of spelling.
func (s *Svc) Register(ctx context.Context, userID, imageDataURL string) (dom.Receipt, error) {
	slug, err := identity.Normalize(userID)
	if err != nil {
		return dom.Receipt{}, err
	}
	if imageDataURL == "" {
		return dom.Receipt{}, perr.InvalidArgf("image is required")
	}

	msg, err := s.registrar.Register(ctx, slug, imageDataURL)
	if err != nil {
		return dom.Receipt{}, err
	}

	s.log.Info().Str("identity", slug).Msg("face enrolled")
	return dom.Receipt{UserID: slug, Message: msg}, nil
}
