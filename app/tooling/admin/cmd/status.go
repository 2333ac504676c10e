package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node's chain status",
	Run: func(cmd *cobra.Command, args []string) {
		get("/v1/node/status")
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
