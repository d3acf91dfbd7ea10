package module

import (
	"testing"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/config"
)

func TestFromConfig_Defaults(t *testing.T) {
	opts := FromConfig(config.New())

	if opts.Interval != 3*time.Second {
		t.Fatalf("Interval = %v", opts.Interval)
	}
	if opts.MaxWidth != 960 || opts.JPEGQuality != 80 {
		t.Fatalf("frame opts = %d/%d", opts.MaxWidth, opts.JPEGQuality)
	}
	if opts.BackoffAfter != 5 || opts.MaxInterval != 12*time.Second {
		t.Fatalf("backoff opts = %d/%v", opts.BackoffAfter, opts.MaxInterval)
	}
	if opts.CameraSource != "mjpeg" || opts.WarmupTimeout != 5*time.Second {
		t.Fatalf("camera opts = %q/%v", opts.CameraSource, opts.WarmupTimeout)
	}
}

func TestFromConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CAPTURE_INTERVAL", "1s")
	t.Setenv("CAMERA_SOURCE", "stills")
	t.Setenv("CAMERA_STILLS_DIR", "/tmp/frames")

	opts := FromConfig(config.New())
	if opts.Interval != time.Second {
		t.Fatalf("Interval = %v", opts.Interval)
	}
	if opts.CameraSource != "stills" || opts.StillsDir != "/tmp/frames" {
		t.Fatalf("camera opts = %q/%q", opts.CameraSource, opts.StillsDir)
	}
}
