package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"piazza-herald/internal/ai"
	"piazza-herald/internal/redisclient"
	"piazza-herald/internal/storage"
	"piazza-herald/internal/telegram"
	"piazza-herald/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the digest scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		setupLogging(cfg.App.LogLevel)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		fetcher, builder, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}

		// Redis client
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		bot, err := telegram.New(cfg.Telegram, fetcher, builder)
		if err != nil {
			return err
		}

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" && cfg.OpenAI.Model != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		digestWorker := &worker.DigestWorker{
			Source:     fetcher,
			Builder:    builder,
			Log:        store,
			Sender:     bot,
			Summarizer: summarizer,
			Course:     cfg.Digest.Course,
			Language:   cfg.Digest.Language,
			ArchiveDir: cfg.Digest.ArchiveDir,
			Hour:       cfg.Digest.Hour,
			Days:       cfg.Digest.Days,
			FetchLimit: cfg.Digest.FetchLimit,
			DisplayCap: cfg.Digest.DisplayCap,
		}

		slog.Info("starting piazza-herald", "course", cfg.Digest.Course, "network", cfg.Piazza.NetworkID, "digest_hour_utc", cfg.Digest.Hour)
		mgr := worker.NewManager(bot, digestWorker)

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		if err := mgr.Start(ctx); err != nil {
			return err
		}
		return nil
	},
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
