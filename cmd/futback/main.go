package main

import (
	"os"

	"github.com/rustyeddy/futback/cmd/futback/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
