// Package main provides the entrypoint for run-endpoint.
package main

import (
	"os"

	"github.com/aviation-iia/run-endpoint/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
