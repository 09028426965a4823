package cmd

import (
	"github.com/spf13/cobra"
)

// sendCmd delivers today's digest to the chat right now, the on-demand
// equivalent of a scheduler tick.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Deliver today's digest to the configured chat now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDigest(cmd, GetConfig(), true)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
