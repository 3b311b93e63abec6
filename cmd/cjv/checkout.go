package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cityjson/cjv/internal/snapshot"
	"github.com/cityjson/cjv/internal/ui"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <file> <ref> <output>",
	Short: "Export one version as a plain CityJSON file",
	Long: `Export one version of a versioned CityJSON file as an ordinary,
non-versioned CityJSON document.

The ref may be a version name, a branch or a tag. The exported document
contains exactly the objects bound at that version, with the vertex table
reduced to the coordinates those objects actually reference and renumbered
from zero. The output carries no trace of the versioning structure.

Nothing is written on failure: an unknown ref or a missing object revision
leaves the output path untouched.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckout(cmd.OutOrStdout(), args[0], args[1], args[2])
	},
}

// runCheckout resolves ref, assembles its snapshot and writes it to output.
// Every failure returns before the output path is touched.
func runCheckout(w io.Writer, file, ref, output string) error {
	doc, graph, store, err := loadVersioned(file)
	if err != nil {
		return err
	}

	version, err := graph.Resolve(ref)
	if err != nil {
		return err
	}
	debugLog.Printf("checkout: ref %q resolved to version %q", ref, version.Name)

	out, err := snapshot.Assemble(doc, store, version)
	if err != nil {
		return err
	}

	if err := out.WriteFile(output); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Checked out %s (%d objects) to %s\n",
		ui.RenderPass("✓"), ui.RenderVersion(version.Name), len(out.CityObjects), output)
	return nil
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}
