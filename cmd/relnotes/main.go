package main

import (
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCodeOf(err))
	}
}
