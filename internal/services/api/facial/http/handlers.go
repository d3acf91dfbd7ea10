// Package http provides http transport for the facial flows
package http

import (
	stdhttp "net/http"

	"github.com/DeboraAmaral/sprint04-iot/internal/modkit/httpkit"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"

	capdom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"
	enrolldom "github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/domain"
	resolvedom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"
	stilldom "github.com/DeboraAmaral/sprint04-iot/internal/services/still/domain"

	"github.com/DeboraAmaral/sprint04-iot/internal/services/api/facial/domain"
)

// Deps are the ports the facial handlers drive
type Deps struct {
	Capture  capdom.CapturePort
	Resolver resolvedom.ResolvePort
	Still    stilldom.StillPort
	Enroll   enrolldom.EnrollPort
}

type handlers struct{ deps Deps }

// Register mounts the facial routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Post(r, "/capture/start", h.captureStart)
	httpkit.Post(r, "/capture/stop", h.captureStop)
	httpkit.Get(r, "/capture/status", h.captureStatus)
	httpkit.PostJSON[domain.StillInput](r, "/auth/still", h.authStill)
	httpkit.PostJSON[domain.EnrollInput](r, "/enroll", h.enroll)
	httpkit.Get(r, "/session", h.session)
}

//
// Swagger DTOs and route docs
//

// CaptureStartResponse acknowledges a started capture session
// swagger:model
type CaptureStartResponse struct {
	Started bool          `json:"started" example:"true"`
	Status  capdom.Status `json:"status"`
}

// CaptureStopResponse acknowledges a stopped capture session
type CaptureStopResponse struct {
	Stopped bool `json:"stopped" example:"true"`
}

// swagger:route POST /capture/start Facial captureStart
// @Summary Acquire the camera and begin the verification poll loop
// @Tags Facial
// @Produce json
// @Success 200 {object} CaptureStartResponse "ok"
// @Failure 503 {object} httpkit.Envelope "camera unavailable"
// @Router /capture/start [post]
func (h *handlers) captureStart(r *stdhttp.Request) (any, error) {
	if err := h.deps.Capture.Start(r.Context()); err != nil {
		return nil, err
	}
	return CaptureStartResponse{Started: true, Status: h.deps.Capture.Status()}, nil
}

// swagger:route POST /capture/stop Facial captureStop
// @Summary Stop the poll loop and release the camera
// @Tags Facial
// @Produce json
// @Success 200 {object} CaptureStopResponse "ok"
// @Router /capture/stop [post]
func (h *handlers) captureStop(_ *stdhttp.Request) (any, error) {
	h.deps.Capture.Stop()
	return CaptureStopResponse{Stopped: true}, nil
}

// swagger:route GET /capture/status Facial captureStatus
// @Summary Current capture session status
// @Tags Facial
// @Produce json
// @Success 200 {object} capdom.Status "ok"
// @Router /capture/status [get]
func (h *handlers) captureStatus(_ *stdhttp.Request) (any, error) {
	return h.deps.Capture.Status(), nil
}

// swagger:route POST /auth/still Facial authStill
// @Summary Verify an uploaded still and log the account in
// @Tags Facial
// @Accept json
// @Produce json
// @Param payload body domain.StillInput true "Still"
// @Success 200 {object} stilldom.Result "ok"
// @Failure 401 {object} httpkit.Envelope "no match"
// @Router /auth/still [post]
func (h *handlers) authStill(r *stdhttp.Request, in domain.StillInput) (any, error) {
	return h.deps.Still.Authenticate(r.Context(), in.Image)
}

// swagger:route POST /enroll Facial enroll
// @Summary Register a face with the verification backend
// @Tags Facial
// @Accept json
// @Produce json
// @Param payload body domain.EnrollInput true "Enroll"
// @Success 200 {object} enrolldom.Receipt "ok"
// @Router /enroll [post]
func (h *handlers) enroll(r *stdhttp.Request, in domain.EnrollInput) (any, error) {
	return h.deps.Enroll.Register(r.Context(), in.UserID, in.Image)
}

// swagger:route GET /session Facial session
// @Summary Current committed session, if any
// @Tags Facial
// @Produce json
// @Success 200 {object} resolvedom.Session "ok"
// @Failure 404 {object} httpkit.Envelope "no session"
// @Router /session [get]
func (h *handlers) session(_ *stdhttp.Request) (any, error) {
	sess, ok := h.deps.Resolver.Session()
	if !ok {
		return nil, perr.NotFoundf("no session committed")
	}
	return sess, nil
}
