// Package version provides build version information and the client's
// User-Agent string.
//
// Version, git commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/basiczoom/version.Version=1.0.0"
package version
