// Package main provides the famplot CLI.
package main

import (
	"os"

	"github.com/wgraj/famplot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
