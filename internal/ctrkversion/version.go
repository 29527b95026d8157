// Package ctrkversion holds build-time version metadata, injected via
// -ldflags at build time.
package ctrkversion

var (
	// Version is the current application version.
	Version = "dev"
	// GitSHA is the git commit SHA.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String renders the version metadata for the -version CLI flag.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
