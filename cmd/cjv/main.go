// Command cjv inspects versioned CityJSON files: it renders the version
// history (log) and exports any single version as a plain CityJSON document
// (checkout).
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cityjson/cjv/internal/cityjson"
	"github.com/cityjson/cjv/internal/ui"
	"github.com/cityjson/cjv/internal/versioning"
)

// debugLog receives diagnostic output when --debug-log is set; it discards
// everything otherwise so call sites never need a nil check.
var debugLog = log.New(io.Discard, "", 0)

var rootCmd = &cobra.Command{
	Use:   "cjv",
	Short: "Inspect and export versions of a versioned CityJSON file",
	Long: `cjv works with versioned CityJSON files: city models whose container
carries a "versioning" member with a DAG of versions and named branch and
tag pointers.

cjv is read-only. It can render the version history (log) and materialize
any single version as an ordinary, non-versioned CityJSON document
(checkout). It never writes new versions.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(viper.GetBool("no_color"))

		if path := viper.GetString("debug_log"); path != "" {
			debugLog = log.New(&lumberjack.Logger{
				Filename:   path,
				MaxSize:    10, // MB
				MaxBackups: 3,
			}, "[cjv] ", log.LstdFlags)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("debug-log", "", "Write diagnostic log to this file")

	viper.SetEnvPrefix("CJV")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("debug_log", rootCmd.PersistentFlags().Lookup("debug-log"))
}

// loadVersioned reads a versioned CityJSON file and builds the validated
// version graph plus the revision store. Used by every subcommand.
func loadVersioned(path string) (*cityjson.Document, *versioning.Graph, *versioning.ObjectStore, error) {
	doc, err := cityjson.ParseFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if !doc.IsVersioned() {
		return nil, nil, nil, fmt.Errorf("%s is not a versioned CityJSON file", path)
	}

	graph, err := versioning.NewGraph(doc.Versioning)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := versioning.NewStore(doc)
	if err != nil {
		return nil, nil, nil, err
	}

	debugLog.Printf("loaded %s: %d versions, %d revisions", path, graph.Len(), store.Len())
	return doc, graph, store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.RenderErr("Error:"), err)
		os.Exit(1)
	}
}
