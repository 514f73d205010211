package main

import (
	"os"

	"github.com/tmont/requiem/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
