package main

import (
	"os"

	"github.com/mailsnap/mailsnap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
