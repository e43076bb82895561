// Package version carries the build identity of the assess binary.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/example/assess/internal/version.Version=v1.2.0 ..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the banner shown by --version.
func String() string {
	return fmt.Sprintf("assess %s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

// UserAgent identifies assess to the assessment service.
func UserAgent() string {
	return fmt.Sprintf("assess/%s (%s; %s/%s)", Version, shortCommit(), runtime.GOOS, runtime.GOARCH)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
