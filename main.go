package main

import (
	"os"

	"github.com/abhisek/certlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
