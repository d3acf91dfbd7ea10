package module

import dom "github.com/DeboraAmaral/sprint04-iot/internal/services/capture/domain"

// Ports holds the ports exposed by the capture module
type Ports struct {
	Capture dom.CapturePort
	Gate    dom.Gate
}
