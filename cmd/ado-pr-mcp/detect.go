package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dstockton/ado-pr-mcp/pkg/adopr"
)

var detectDir string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the Azure DevOps coordinates detected from git",
	Long: `Detect the Azure DevOps organization, project and repository from the
origin remote of the surrounding git repository. Useful for checking
what ado://pull-requests/current would resolve to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := adopr.DetectRepo(detectDir)
		if err != nil {
			return err
		}
		fmt.Printf("Organization: %s\n", info.Organization)
		fmt.Printf("Project:      %s\n", info.Project)
		fmt.Printf("Repository:   %s\n", info.Repository)
		fmt.Printf("Remote URL:   %s\n", info.RawURL)
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectDir, "dir", "", "directory to detect from (default: current directory)")
}
