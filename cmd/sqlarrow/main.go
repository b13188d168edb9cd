// Package main provides the sqlarrow command.
package main

import (
	"os"

	"github.com/mathias-mike/arrow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
