// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/cmd"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	root := cmd.NewRootCmd(handlers.NewBuildInfo(Version, Commit, BuildTime))

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
