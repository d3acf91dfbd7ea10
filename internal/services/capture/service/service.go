// Package service implements the camera session and its capture-verify poll loop
package service

import (
	"context"
	"sync"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/camera"
	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/metrics"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"
)

// Verifier is the verification round trip the loop performs each tick
type Verifier interface {
	VerifyLive(ctx context.Context, imageDataURL string) (faceapi.VerifyResult, error)
}

// Config controls the poll loop
type Config struct {
	// Interval between frame submissions
	Interval time.Duration

	// Frame encoding bounds
	MaxWidth    int
	JPEGQuality int

	// BackoffAfter is how many consecutive transport errors grow the
	// interval; zero disables backoff entirely
	BackoffAfter int

	// MaxInterval caps the grown interval
	MaxInterval time.Duration
}

const defaultInterval = 3 * time.Second

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = 4 * c.Interval
	}
	return c
}

// Svc owns the device handle and the poll goroutine.
// It implements dom.CapturePort and dom.Gate.
type Svc struct {
	opener   camera.Opener
	verifier Verifier
	resolver dom.Resolver
	cfg      Config
	log      logger.Logger

	// lifeMu serializes Start and Stop end to end, including the
	// device open; two racing Starts must never both hold a device
	lifeMu sync.Mutex

	mu     sync.Mutex
	dev    camera.Device
	cancel context.CancelFunc
	done   chan struct{}

	// gen invalidates results from loops that were stopped; a late
	// result whose gen no longer matches must not mutate state
	gen uint64

	polling bool
	status  dom.Status
}

// New constructs the capture service
func New(opener camera.Opener, verifier Verifier, resolver dom.Resolver, cfg Config) *Svc {
	return &Svc{
		opener:   opener,
		verifier: verifier,
		resolver: resolver,
		cfg:      cfg.withDefaults(),
		log:      *logger.Named("capture"),
		status:   dom.Status{State: dom.StateIdle, UpdatedAt: time.Now()},
	}
}

// Start acquires the device and begins the poll loop.
// An existing session is torn down first so the device handle is
// released before re-acquisition.
func (s *Svc) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	s.stop()

	dev, err := s.opener.Open(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = dom.Status{
			State:     dom.StateIdle,
			Message:   "camera unavailable",
			UpdatedAt: time.Now(),
		}
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("device acquisition failed")
		return err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.dev = dev
	s.cancel = cancel
	s.done = done
	s.polling = true
	s.status = dom.Status{
		State:     dom.StatePolling,
		Message:   "position your face in frame",
		UpdatedAt: time.Now(),
	}
	s.mu.Unlock()

	metrics.CaptureSessionsActive.Set(1)
	s.log.Info().Uint64("session", gen).Msg("capture session started")
	go s.loop(loopCtx, gen, dev, done)
	return nil
}

// Stop tears the session down. Safe to call at any time, including
// mid-resolution and when already stopped.
func (s *Svc) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	s.stop()
}

// stop is Stop without the lifecycle lock; callers hold lifeMu
func (s *Svc) stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	dev := s.dev
	if cancel == nil && dev == nil {
		s.mu.Unlock()
		return
	}
	s.gen++ // orphan any in-flight result
	s.cancel = nil
	s.done = nil
	s.dev = nil
	s.polling = false
	s.status = dom.Status{State: dom.StateIdle, UpdatedAt: time.Now()}
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if dev != nil {
		_ = dev.Close()
	}
	metrics.CaptureSessionsActive.Set(0)
	s.log.Info().Msg("capture session stopped")
}

// Status returns a snapshot of the session status
func (s *Svc) Status() dom.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PollerStopped implements dom.Gate: true whenever the loop is not
// submitting frames
func (s *Svc) PollerStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.polling
}
