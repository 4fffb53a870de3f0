// Package main is the entry point for the ChartScope MCP server.
package main

import (
	"os"

	"github.com/chartscope/chartscope/cmd/chartscope/app"
	"github.com/chartscope/chartscope/pkg/logger"
)

func main() {
	// Logging goes to stderr so stdout stays clean for the MCP protocol
	// stream and for commands that print data.
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
