package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cityjson/cjv/internal/history"
)

var logCmd = &cobra.Command{
	Use:   "log <file> [ref]",
	Short: "Show the version history of a versioned CityJSON file",
	Long: `Show the version history of a versioned CityJSON file.

Versions are listed newest-first: a version always appears after every
version derived from it. Branch and tag labels are shown next to the
version they point at, and versions with more than one parent are marked
as merges.

With no ref, the walk starts from every tip (versions nothing else builds
on). With a ref — a version name, branch or tag — only that version's
ancestry is shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) > 1 {
			ref = args[1]
		}
		return runLog(cmd.OutOrStdout(), args[0], ref)
	},
}

func runLog(w io.Writer, file, ref string) error {
	_, graph, _, err := loadVersioned(file)
	if err != nil {
		return err
	}

	entries, err := history.Log(graph, ref)
	if err != nil {
		return err
	}

	fmt.Fprint(w, history.Render(entries))
	return nil
}

func init() {
	rootCmd.AddCommand(logCmd)
}
