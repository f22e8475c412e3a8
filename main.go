package main

import (
	"os"

	"github.com/sgaunet/notifymail/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
