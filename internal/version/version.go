// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/yakuperoglu/nova-ai-cli/internal/version.Version=1.2.0"
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
