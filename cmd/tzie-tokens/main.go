// Package main provides the tzie-tokens CLI.
package main

import (
	"os"

	"github.com/1101hirokin/tzie-tokens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
