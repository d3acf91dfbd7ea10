package module

import (
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/platform/config"
)

// Options controls identity resolution
type Options struct {
	// RedirectDelay is the pause between success and the home redirect
	RedirectDelay time.Duration

	// DeviceSecret keys credential derivation. When empty a random
	// secret is generated and persisted on first boot.
	DeviceSecret string
}

// FromConfig reads with the RESOLVE_ prefix; the device secret comes
// from AUTH_DEVICE_SECRET so it can be shared with provisioning tools
func FromConfig(cfg config.Conf) Options {
	res := cfg.Prefix("RESOLVE_")
	auth := cfg.Prefix("AUTH_")
	return Options{
		RedirectDelay: res.MayDuration("REDIRECT_DELAY", 2*time.Second),
		DeviceSecret:  auth.MayString("DEVICE_SECRET", ""),
	}
}
