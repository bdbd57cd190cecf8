// Package version carries build metadata stamped via -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Sha is the git commit the binary was built from.
	Sha = "unknown"

	// Buildtime is the UTC timestamp of the build.
	Buildtime = "unknown"
)
