// Package version exposes the build identity stamped into the binary
package version

import "runtime"

// Build identity, overridden at link time:
//
//	go build -ldflags "\
//	  -X 'easel/internal/core/version.version=v0.2.0' \
//	  -X 'easel/internal/core/version.commit=9f1c2d3' \
//	  -X 'easel/internal/core/version.built=2026-08-25'"
var (
	version = "dev"
	commit  = "none"
	built   = "unknown"
)

// BuildInfo identifies one build of the service
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go_version"`
}

// Info reports the stamped build identity plus the toolchain that built it
func Info() BuildInfo {
	return BuildInfo{
		Service:   "easel-api",
		Version:   version,
		Commit:    commit,
		Built:     built,
		GoVersion: runtime.Version(),
	}
}
