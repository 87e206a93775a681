// Package version holds the application version, overridable at build time:
//
//	go build -ldflags "-X github.com/tvandenberg/portfolio-tracker/internal/version.Version=v1.2.3"
package version

// Version is the application version string.
var Version = "dev"
