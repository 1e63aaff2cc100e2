// Package main is the entry point for the hsmctl CLI.
//
// hsmctl is a command-line tool for provisioning AWS CloudHSM clusters:
// it creates the surrounding network, drives the cluster through its
// initialization lifecycle by polling the control plane until target
// states are reached, and tears everything down again.
//
// Commands: init, apply, status, destroy.
//
// For detailed usage information, run:
//
//	hsmctl --help
package main

import (
	"fmt"
	"os"

	"github.com/hsmctl/hsmctl/cmd/hsmctl/commands"
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
