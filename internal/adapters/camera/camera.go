// Package camera provides frame sources for the capture loop.
//
// A Device hands out decoded frames on demand. Exactly one Device is
// held at a time by the capture session; acquisition order (release
// before re-acquire) is owned by the session, not by this package.
package camera

import (
	"context"
	"image"
	"time"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
)

// Device produces frames until closed
type Device interface {
	// Snapshot returns the most recent frame. It blocks until a frame
	// is available or ctx expires.
	Snapshot(ctx context.Context) (image.Image, error)

	// Close releases the underlying source. Safe to call twice.
	Close() error
}

// Opener acquires a device; the seam the capture session is built on
type Opener interface {
	Open(ctx context.Context) (Device, error)
}

// Config selects and configures a frame source
type Config struct {
	// Source is "mjpeg" or "stills"
	Source string

	// URL is the MJPEG stream endpoint (IP camera / phone camera app)
	URL string

	// StillsDir is a directory of jpeg/png files cycled as frames,
	// for development without a camera
	StillsDir string

	// WarmupTimeout bounds how long Open waits for the first frame
	WarmupTimeout time.Duration
}

// OpenerFor returns the Opener for the configured source
func OpenerFor(cfg Config) (Opener, error) {
	switch cfg.Source {
	case "mjpeg", "":
		if cfg.URL == "" {
			return nil, perr.InvalidArgf("camera: mjpeg source requires a url")
		}
		return &mjpegOpener{cfg: cfg}, nil
	case "stills":
		if cfg.StillsDir == "" {
			return nil, perr.InvalidArgf("camera: stills source requires a directory")
		}
		return &stillsOpener{cfg: cfg}, nil
	default:
		return nil, perr.InvalidArgf("camera: unknown source %q", cfg.Source)
	}
}
