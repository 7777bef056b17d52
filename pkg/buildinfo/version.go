// Package buildinfo holds the version stamped into release binaries.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/stepgraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/stepgraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/stepgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp, RFC 3339
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
