// Command termlookup finds dictionary concepts in clinical notes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

var (
	logLevel  string
	prettyLog bool
)

var rootCmd = &cobra.Command{
	Use:   "termlookup",
	Short: "Dictionary lookup of clinical concepts",
	Long: `termlookup matches dictionary terms in tokenized clinical text, tolerating
a bounded number of skipped tokens, and resolves overlapping matches by
semantic subsumption.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(logLevel, prettyLog, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&prettyLog, "pretty-log", false, "human readable log output")
	rootCmd.AddCommand(annotateCmd, buildDBCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
