// Package buildconfig exposes release metadata stamped at link time via
// -ldflags "-X github.com/driftlab/sponge/internal/buildconfig.version=…".
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

// Version reports the release version baked into the binary.
func Version() string {
	return version
}

// Commit reports the VCS revision baked into the binary.
func Commit() string {
	return commit
}

// VersionInfo bundles both for structured reporting surfaces.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
