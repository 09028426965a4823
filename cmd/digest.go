package cmd

import (
	"context"
	"fmt"
	"time"

	"piazza-herald/internal/config"
	"piazza-herald/internal/telegram"

	"github.com/spf13/cobra"
)

var digestSend bool

// digestCmd builds today's digest on demand, ignoring the delivered marker.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build today's digest and print it (or --send it to the chat)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDigest(cmd, GetConfig(), digestSend)
	},
}

func runDigest(cmd *cobra.Command, cfg config.Config, send bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fetcher, builder, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	posts, err := fetcher.PostsCreatedWithin(ctx, cfg.Digest.Days, cfg.Digest.FetchLimit)
	if err != nil {
		return err
	}
	text := builder.DailyDigest(posts, cfg.Digest.DisplayCap)

	if !send {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	bot, err := telegram.New(cfg.Telegram, fetcher, builder)
	if err != nil {
		return err
	}
	if err := bot.SendDigest(ctx, text); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Digest sent to chat %d\n", cfg.Telegram.ChatID)
	return nil
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().BoolVar(&digestSend, "send", false, "deliver the digest to the configured chat instead of printing it")
}
