package main

import (
	"os"

	"github.com/mhaller/es5parser/cmd/es5parse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
