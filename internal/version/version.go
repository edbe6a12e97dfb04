// Package version exposes the service version string.
package version

// Version is the service version reported by the info endpoint.
//
// It can be overridden at build time:
//
//	go build -ldflags "-X github.com/voxproof/voice-detection-api/internal/version.Version=1.2.0"
var Version = "1.0.0"
