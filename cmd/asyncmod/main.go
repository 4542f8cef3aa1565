// Package main is the entry point for the asyncmod CLI.
//
// asyncmod imports a set of named modules concurrently into a module host.
// Every requested module is attempted. Progress messages and errors are
// reported together once all imports have finished, so the output of one
// import never interleaves with another.
//
// Commands: import, list, version, completion.
//
// For detailed usage information, run:
//
//	asyncmod --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/asyncmod/cmd/asyncmod/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
