package cmd

import (
	"context"
	"fmt"
	"time"

	"piazza-herald/internal/redisclient"
	"piazza-herald/internal/storage"

	"github.com/spf13/cobra"
)

var deliveredDay string

// deliveredCmd reports whether a day's digest marker is set.
var deliveredCmd = &cobra.Command{
	Use:   "delivered",
	Short: "Check the digest delivery marker for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		day := deliveredDay
		if day == "" {
			day = time.Now().UTC().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return fmt.Errorf("invalid --day %q: %w", deliveredDay, err)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		delivered, err := store.IsDelivered(ctx, cfg.Digest.Course, day)
		if err != nil {
			return err
		}
		if delivered {
			fmt.Fprintf(cmd.OutOrStdout(), "digest for %s delivered on %s\n", cfg.Digest.Course, day)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "no digest delivered for %s on %s\n", cfg.Digest.Course, day)
		}
		return nil
	},
}

func init() {
	redisCmd.AddCommand(deliveredCmd)
	deliveredCmd.Flags().StringVar(&deliveredDay, "day", "", "UTC day to check (YYYY-MM-DD, default today)")
}
