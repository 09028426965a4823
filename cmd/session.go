package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"piazza-herald/internal/config"
	"piazza-herald/internal/digest"
	"piazza-herald/internal/piazza"
)

// newSession logs into Piazza and returns the fetcher and builder shared by
// every subcommand that touches the forum.
func newSession(ctx context.Context, cfg config.Config) (*piazza.Fetcher, *digest.Builder, error) {
	if cfg.Piazza.Email == "" || cfg.Piazza.Password == "" {
		return nil, nil, errors.New("piazza credentials missing: set piazza.email and piazza.password (or HERALD_PIAZZA_EMAIL / HERALD_PIAZZA_PASSWORD)")
	}
	if cfg.Piazza.NetworkID == "" {
		return nil, nil, errors.New("piazza.network_id missing")
	}

	client := piazza.NewClient(cfg.Piazza.BaseURL)
	loginCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := client.Login(loginCtx, cfg.Piazza.Email, cfg.Piazza.Password); err != nil {
		return nil, nil, fmt.Errorf("piazza login: %w", err)
	}

	net := client.Network(cfg.Piazza.NetworkID)
	fetcher := piazza.NewFetcher(net, cfg.Piazza.FetchMax, cfg.Piazza.FetchMin)
	builder := digest.NewBuilder(cfg.Digest.Course, cfg.Piazza.BaseURL, cfg.Piazza.NetworkID)
	return fetcher, builder, nil
}
