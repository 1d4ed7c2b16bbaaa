package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dstockton/ado-pr-mcp/pkg/adopr"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ado-pr-mcp v%s\n", adopr.Version)
	},
}
