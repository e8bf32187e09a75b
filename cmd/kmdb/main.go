package main

import (
	"os"

	"github.com/kmdb/kmdb-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
