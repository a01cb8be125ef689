package main

import (
	"os"

	"github.com/expressgen/expressgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
