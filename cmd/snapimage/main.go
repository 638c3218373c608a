// Package main is the entry point for the snapimage CLI.
//
// snapimage creates snapshot images of Hetzner Cloud servers and deletes
// images by name. It also runs as a task module that reads an argument
// file and prints one JSON result document.
//
// For detailed usage information, run:
//
//	snapimage --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/snapimage/cmd/snapimage/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
