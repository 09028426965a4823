package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"piazza-herald/internal/piazza"

	"github.com/spf13/cobra"
)

// readCmd prints the detail view of one post, the console twin of the
// chat /read command.
var readCmd = &cobra.Command{
	Use:   "read <post_id>",
	Short: "Print the detail view of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		id := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fetcher, builder, err := newSession(ctx, cfg)
		if err != nil {
			return err
		}
		post, err := fetcher.PostByID(ctx, id)
		if errors.Is(err, piazza.ErrInvalidPostID) || errors.Is(err, piazza.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s not a valid Piazza post ID. Please try again.\n", id)
			return nil
		}
		if err != nil {
			return err
		}

		view := builder.PostDetail(post)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", view.Description, view.Title, view.URL)
		for _, f := range view.Fields {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n%s\n", f.Name, f.Value)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", view.Footer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
