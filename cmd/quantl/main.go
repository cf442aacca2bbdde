package main

import (
	"os"

	"github.com/ioyy900205/quantL/cmd/quantl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
