// Package main is the entry point for the bonus-engine CLI.
package main

import (
	"os"

	"github.com/warp/bonus-engine/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
