package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cityjson/cjv/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check the versioning structure of a versioned CityJSON file",
	Long: `Check that a versioned CityJSON file has a well-formed versioning
structure: no duplicate version names, no cycles in the parent graph, and
no parent, branch or tag pointing at a version that does not exist.

Object revisions referenced by version bindings are checked against the
stored city objects as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args[0])
	},
}

// runValidate loads the document (which validates the graph structure) and
// then checks every binding against the object store.
func runValidate(w io.Writer, path string) error {
	_, graph, store, err := loadVersioned(path)
	if err != nil {
		return err
	}

	missing := 0
	for _, version := range graph.Versions() {
		ids := make([]string, 0, len(version.Bindings))
		for id := range version.Bindings {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if _, err := store.Get(id, version.Bindings[id]); err != nil {
				fmt.Fprintf(w, "%s version %q: %v\n", ui.RenderWarn("⚠"), version.Name, err)
				missing++
			}
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d binding(s) reference revisions absent from the store", missing)
	}
	fmt.Fprintf(w, "%s %s is a well-formed versioned CityJSON file (%d versions)\n",
		ui.RenderPass("✓"), path, graph.Len())
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
