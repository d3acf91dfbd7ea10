package module

import (
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/config"
)

// Options controls the capture session and its poll loop
type Options struct {
	Interval     time.Duration
	MaxWidth     int
	JPEGQuality  int
	BackoffAfter int
	MaxInterval  time.Duration

	CameraSource  string
	CameraURL     string
	StillsDir     string
	WarmupTimeout time.Duration
}

// FromConfig reads with CAPTURE_ and CAMERA_ prefixes
func FromConfig(cfg config.Conf) Options {
	cap := cfg.Prefix("CAPTURE_")
	cam := cfg.Prefix("CAMERA_")
	return Options{
		Interval:     cap.MayDuration("INTERVAL", 3*time.Second),
		MaxWidth:     cap.MayInt("MAX_WIDTH", 960),
		JPEGQuality:  cap.MayInt("JPEG_QUALITY", 80),
		BackoffAfter: cap.MayInt("BACKOFF_AFTER", 5),
		MaxInterval:  cap.MayDuration("MAX_INTERVAL", 12*time.Second),

		CameraSource:  cam.MayString("SOURCE", "mjpeg"),
		CameraURL:     cam.MayString("URL", ""),
		StillsDir:     cam.MayString("STILLS_DIR", ""),
		WarmupTimeout: cam.MayDuration("WARMUP_TIMEOUT", 5*time.Second),
	}
}
