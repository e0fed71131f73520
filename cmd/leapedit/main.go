// Package main provides the leapedit CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapedit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
