// Package main provides the Concordia CLI entry point.
package main

import (
	"os"

	"github.com/concordia-labs/concordia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
