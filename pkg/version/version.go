// Package version records build metadata for released binaries.
//
// The variables are overridden at build time:
//
//	go build -ldflags "\
//	  -X github.com/patricklucas/yelp-clog/pkg/version.Version=v1.2.0 \
//	  -X github.com/patricklucas/yelp-clog/pkg/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/patricklucas/yelp-clog/pkg/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

var (
	// Version is the release version of the build.
	Version = "dev"

	// GitCommit is the short commit hash the build was produced from.
	GitCommit = "unknown"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)
