package main

import (
	"os"

	"flashysurf/cmd/flashysurf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
