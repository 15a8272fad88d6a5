package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose   bool
	noColor   bool
	width     int
	format    string
	events    bool
	foldDepth int
	jsonPath  string
	traceTo   string
)

var rootCmd = &cobra.Command{
	Use:   "flatview",
	Short: "Inspect HTML and JSON documents as foldable outlines",
	Long: `flatview loads an HTML or JSON document as a tree and presents it as
an outline, i.e. as a list of rows addressed by flat position. Nodes may be
folded, moved and sorted; every change to the tree is reported as a change
event in flat positions.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if traceTo != "" {
			setupTracing(cmd.ErrOrStderr(), traceTo)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "Line width (0 = terminal width)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", "Input format: auto, html or json")
	rootCmd.PersistentFlags().BoolVar(&events, "events", false, "Print change events")
	rootCmd.PersistentFlags().IntVar(&foldDepth, "fold-depth", -1, "Fold all nodes at this depth after loading")
	rootCmd.PersistentFlags().StringVar(&jsonPath, "path", "", "Load the JSON value at this path only")
	rootCmd.PersistentFlags().StringVar(&traceTo, "trace", "", "Trace to stderr with level Debug, Info or Error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(w, format, args...)
	}
}

// setupTracing directs all tracing to w, using the Go log adapter.
func setupTracing(w io.Writer, level string) {
	trace := gologadapter.New()
	trace.SetOutput(w)
	trace.SetTraceLevel(tracing.TraceLevelFromString(level))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return trace
	}))
}

// resetFlags restores the defaults of the global flags.
func resetFlags() {
	verbose, noColor, events = false, false, false
	width, foldDepth = 0, -1
	format, jsonPath, traceTo = "auto", "", ""
	rowsFrom, rowsCount = 0, -1
	moveInto = false
	sortLang = "en"
}
