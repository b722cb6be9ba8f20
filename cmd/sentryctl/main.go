// Package main is the entry point for the sentryctl CLI.
// sentryctl is the developer terminal tool for interacting with the Sentry
// REST API.
package main

import (
	"os"

	"sentryctl/cmd/sentryctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
