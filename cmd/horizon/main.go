// Package main provides the entry point for the horizon CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/horizon/internal/cli"
)

// Build information set via ldflags.
//
//nolint:gochecknoglobals // Set at build time
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
