package cmd

import "github.com/spf13/cobra"

// redisCmd groups subcommands that poke the Redis instance backing the
// digest delivery markers.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis utilities",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
