// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "caredesk-admin",
	Short: "CareDesk-Admin is a web-based complaint intake and tracking portal",
	Long: `CareDesk-Admin is a web-based complaint intake and tracking portal
for hospitals that provides submission forms for patients and dashboards
for department administrators to track complaints through their lifecycle.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
