package version

import (
	"fmt"
	"regexp"
)

// Set at build time with -ldflags "-X github.com/frostyard/forgeexec/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "local"
)

var semverRe = regexp.MustCompile(`^v?(\d+\.\d+\.\d+)$`)

// String is the full version line shown by --version.
func String() string {
	return fmt.Sprintf("%s (Commit: %s) (Date: %s) (Built by: %s)", Version, Commit, Date, BuiltBy)
}

// Short returns "vX.Y.Z" for release builds and "dev" for everything else.
func Short() string {
	m := semverRe.FindStringSubmatch(Version)
	if m == nil {
		return "dev"
	}
	return "v" + m[1]
}
