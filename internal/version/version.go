// Package version carries the build-stamped coppo version string.
package version

// Version is the coppo release version. Overridden at build time via
// -ldflags "-X coppo/internal/version.Version=...".
var Version = "0.1.0"
