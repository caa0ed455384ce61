// Command freontrack is the unified CLI: API server, background worker,
// schema migrations, and operator queries against a running server.
package main

import (
	"os"

	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/cli"
)

// Injected at build time via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = gitCommit
	cli.BuildTime = buildTime
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
