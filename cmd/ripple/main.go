// Package main provides the entry point for the ripple CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/ripple/cmd/ripple/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel the context on interrupt or termination signals so watch
	// sessions shut down cleanly.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
