// Package main provides the anvil CLI for installing mod-loader builds.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "install":
		runInstall(ctx, os.Args[2:])
	case "builds":
		runBuilds(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`anvil - mod loader installer

Usage:
  anvil <command> [options]

Commands:
  install   Install a loader build for a game version
  builds    List the loader builds available for a game version

Use "anvil <command> --help" for more information about a command.`)
}
