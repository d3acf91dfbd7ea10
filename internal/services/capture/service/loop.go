package service

import (
	"context"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/camera"
	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"
	"github.com/DeboraAmaral/sprint04-iot/internal/core/frame"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/metrics"

	dom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"
)

// loop runs one capture session. Ticker semantics drop missed ticks,
// so at most one verification is in flight and ticks never queue up
// behind a slow service.
func (s *Svc) loop(ctx context.Context, gen uint64, dev camera.Device, done chan struct{}) {
	defer close(done)

	interval := s.cfg.Interval
	t := time.NewTicker(interval)
	defer t.Stop()

	consecutiveErrs := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		tickCtx, cancel := context.WithTimeout(ctx, interval)
		out := s.tick(tickCtx, dev)
		cancel()

		if ctx.Err() != nil {
			return
		}

		metrics.PollTicksTotal.WithLabelValues(out.Kind.String()).Inc()

		if out.Kind == faceapi.KindAuthenticated {
			// First positive wins: the ticker stops before any
			// resolution I/O so no further frames are submitted.
			t.Stop()
			if !s.publishResolving(gen, out.Identity) {
				return // session was stopped under us
			}
			s.runResolution(ctx, gen, out.Identity)
			return
		}

		if !s.publishTick(gen, out) {
			return
		}

		// Transport errors never stop the loop; they optionally
		// stretch it so a dead service is not hammered every tick.
		if out.Kind == faceapi.KindTransportError {
			consecutiveErrs++
			if s.cfg.BackoffAfter > 0 && consecutiveErrs >= s.cfg.BackoffAfter && interval < s.cfg.MaxInterval {
				interval *= 2
				if interval > s.cfg.MaxInterval {
					interval = s.cfg.MaxInterval
				}
				t.Reset(interval)
				s.log.Warn().Dur("interval", interval).Int("consecutive", consecutiveErrs).
					Msg("verification unreachable, stretching poll interval")
			}
			continue
		}
		consecutiveErrs = 0
		if interval != s.cfg.Interval {
			interval = s.cfg.Interval
			t.Reset(interval)
		}
	}
}

// tick performs one snapshot-encode-verify round trip and classifies it
func (s *Svc) tick(ctx context.Context, dev camera.Device) faceapi.Outcome {
	img, err := dev.Snapshot(ctx)
	if err != nil {
		return faceapi.Classify(faceapi.VerifyResult{}, err)
	}

	dataURL, err := frame.EncodeDataURL(img, frame.Options{
		MaxWidth:    s.cfg.MaxWidth,
		JPEGQuality: s.cfg.JPEGQuality,
	})
	if err != nil {
		return faceapi.Classify(faceapi.VerifyResult{}, err)
	}

	start := time.Now()
	res, err := s.verifier.VerifyLive(ctx, dataURL)
	if err == nil {
		metrics.VerifyLatency.Observe(time.Since(start).Seconds())
	}
	return faceapi.Classify(res, err)
}

// publishTick updates status for a non-terminal outcome.
// Returns false when the session generation moved on.
func (s *Svc) publishTick(gen uint64, out faceapi.Outcome) bool {
	msg := tickMessage(out)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.status = dom.Status{
		State:     dom.StatePolling,
		Message:   msg,
		Outcome:   out.Kind.String(),
		UpdatedAt: time.Now(),
	}
	return true
}

// publishResolving flips the session to resolving and closes the gate
func (s *Svc) publishResolving(gen uint64, identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.polling = false
	s.status = dom.Status{
		State:     dom.StateResolving,
		Message:   "authenticated as " + identity + ", signing you in",
		Outcome:   faceapi.KindAuthenticated.String(),
		Identity:  identity,
		UpdatedAt: time.Now(),
	}
	return true
}

// runResolution hands the identity to the resolver on the loop
// goroutine; the poller is already stopped at this point
func (s *Svc) runResolution(ctx context.Context, gen uint64, identity string) {
	err := s.resolver.Resolve(ctx, identity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return // stopped during resolution; discard
	}
	if err != nil {
		s.status = dom.Status{
			State:     dom.StateFailed,
			Message:   "could not sign you in, please try again",
			Identity:  identity,
			UpdatedAt: time.Now(),
		}
		s.log.Warn().Err(err).Str("identity", identity).Msg("resolution failed")
		return
	}
	s.status = dom.Status{
		State:     dom.StateResolved,
		Message:   "welcome, " + identity,
		Identity:  identity,
		UpdatedAt: time.Now(),
	}
}

func tickMessage(out faceapi.Outcome) string {
	switch out.Kind {
	case faceapi.KindNoFace:
		return "position your face in frame"
	case faceapi.KindFaceUnverified:
		return "face detected, identity not recognized"
	case faceapi.KindTransportError:
		return "connection error, retrying"
	default:
		return ""
	}
}
