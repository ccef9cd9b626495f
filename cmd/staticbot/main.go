// Package main is the entry point for the staticbot CLI.
package main

import (
	"os"

	"github.com/staticbot/staticbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
