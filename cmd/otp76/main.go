// Package main is the entry point for the otp76 CLI.
package main

import (
	"os"

	"github.com/u8slvn/otp-76/internal/cli"
)

// Set at link time: -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
//
//nolint:gochecknoglobals // ldflags targets
var (
	version string
	commit  string
	date    string
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
