package module

import dom "easel/internal/services/imagecheck/domain"

// Ports holds the ports exposed by the imagecheck module
type Ports struct {
	Checker dom.CheckerPort
	Stats   dom.StatsPort
}
