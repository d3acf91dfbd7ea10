package module

import dom "github.com/DeboraAmaral/sprint04-iot/internal/services/resolve/domain"

// Ports holds the ports exposed by the resolve module
type Ports struct {
	Resolver dom.ResolvePort

	// DeviceSecret is the persisted derivation secret, shared with
	// sibling modules that derive the same credentials
	DeviceSecret []byte
}
