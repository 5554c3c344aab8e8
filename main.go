package main

import (
	"os"

	"github.com/Builder-Lawyers/site-builder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
