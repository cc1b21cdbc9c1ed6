// Package main is the entry point for the lakeup CLI.
//
// lakeup bootstraps a single-node data lakehouse onto a Kubernetes
// cluster: object storage, a metastore with its relational backend, a
// query engine or catalog engine depending on the configured variant,
// an optional table-definition cache, and the compute-engine client
// configuration that ties them together.
//
// Commands: up, init, version, completion.
//
// For detailed usage information, run:
//
//	lakeup --help
package main

import (
	"fmt"
	"os"

	"github.com/lakeup/lakeup/cmd/lakeup/commands"
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
