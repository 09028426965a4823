package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// pinnedFetchLimit mirrors the chat command: pinned posts are always the
// first entries of the feed, so a small window is enough.
const pinnedFetchLimit = 15

var pinnedCmd = &cobra.Command{
	Use:   "pinned",
	Short: "Print the pinned posts listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fetcher, builder, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}
		posts, err := fetcher.Pinned(ctx, pinnedFetchLimit)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), builder.PinnedListing(posts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinnedCmd)
}
