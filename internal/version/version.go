// Package version holds build metadata injected with ldflags, e.g.
//
//	-ldflags "-X github.com/jmylchreest/tagtint/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release the binary was built from.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = "unknown"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// shortCommit is how many characters of the commit hash are shown.
const shortCommit = 8

// String returns the line printed by `tagtint version` and `--version`.
func String() string {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if Commit == "unknown" || Date == "unknown" {
		return fmt.Sprintf("tagtint version %s (%s, %s)", Version, runtime.Version(), platform)
	}

	commit := Commit
	if len(commit) > shortCommit {
		commit = commit[:shortCommit]
	}
	return fmt.Sprintf("tagtint version %s (commit: %s, built: %s, %s, %s)",
		Version, commit, Date, runtime.Version(), platform)
}
