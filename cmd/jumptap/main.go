package main

import (
	"os"

	"github.com/jask/jumptap/cmd/jumptap/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
