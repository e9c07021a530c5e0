package main

import (
	"os"

	"github.com/agenthands/lattice/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
