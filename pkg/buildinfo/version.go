// Package buildinfo exposes version metadata stamped at build time.
//
// Release builds override these variables with ldflags:
//
//	go build -ldflags "-X github.com/jinwoohan/plotgrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/jinwoohan/plotgrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/jinwoohan/plotgrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for unstamped builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the stamped metadata for --version style output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
