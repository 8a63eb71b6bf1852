// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/blockrender/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String is the line printed by --version.
func String() string {
	if GitCommit == "unknown" && BuildTime == "unknown" {
		return "blockrender " + Version
	}
	return fmt.Sprintf("blockrender %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
