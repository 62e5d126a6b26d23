package main

import (
	"os"

	"github.com/matemagica/matemagica/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
