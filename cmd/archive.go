package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"piazza-herald/internal/archive"
)

// archiveCmd groups digest-archive utilities.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Digest archive utilities",
}

var archiveInspectCmd = &cobra.Command{
	Use:   "inspect <markdown_path>",
	Short: "Parse an archived digest and print its frontmatter keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		doc, err := archive.ParseFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "frontmatter keys: ")
		first := true
		for k := range doc.Frontmatter {
			if !first {
				fmt.Fprint(os.Stdout, ", ")
			}
			fmt.Fprint(os.Stdout, k)
			first = false
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintf(os.Stdout, "body bytes: %d\n", len(doc.Body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveInspectCmd)
}
