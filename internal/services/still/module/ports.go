package module

import dom "github.com/DeboraAmaral/sprint04-iot/internal/services/still/domain"

// Ports holds the ports exposed by the still module
type Ports struct {
	Still dom.StillPort
}
