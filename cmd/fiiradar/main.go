package main

import (
	"os"

	"github.com/brfin/fiiradar/cmd/fiiradar/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
