package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ado-pr-mcp",
	Short: "MCP server for Azure DevOps pull requests",
	Long: `ado-pr-mcp exposes Azure DevOps pull-request data over the Model
Context Protocol resource interface.

Repositories are addressed either by explicit coordinates
(ado://pull-requests/{organization}/{project}/{repository}) or by
auto-detecting the current git repository
(ado://pull-requests/current). Both forms accept an optional
?status={active|completed|abandoned|all} filter, defaulting to active.

Usage:
  ado-pr-mcp serve                 Run the MCP server on stdin/stdout
  ado-pr-mcp serve --listen :8000  Run the MCP server over HTTP
  ado-pr-mcp detect                Print the detected repository coordinates
  ado-pr-mcp version               Show version information`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(detectCmd)
}
