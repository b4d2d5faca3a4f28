package main

import (
	"os"

	"github.com/goliatone/go-paramform/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
