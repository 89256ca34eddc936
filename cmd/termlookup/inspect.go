package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

var (
	inspectConfig     string
	inspectDictionary string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect CUI",
	Short: "Print the dictionary entries of a concept",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectConfig, "config", "c", "lookup.yaml", "lookup configuration file")
	inspectCmd.Flags().StringVar(&inspectDictionary, "dictionary", "", "dictionary name (default: all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	code, err := dictionary.ParseCUI(args[0])
	if err != nil {
		return err
	}
	engine, err := buildEngine(cmd.Context(), inspectConfig)
	if err != nil {
		return err
	}
	defer engine.Close()

	dicts := engine.Dictionaries()
	if inspectDictionary != "" {
		d, ok := engine.Dictionary(inspectDictionary)
		if !ok {
			return fmt.Errorf("dictionary %q: %w", inspectDictionary, internalerr.ErrNotFound)
		}
		dicts = []dictionary.Dictionary{d}
	}

	out := cmd.OutOrStdout()
	for _, d := range dicts {
		entries, err := d.Entries(cmd.Context(), code)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", dictionary.FormatCUI(e.Code), d.Name(), d.Folding(), e.Text())
		}
	}
	encs := engine.Encode(cmd.Context(), code)
	for _, e := range encs {
		fmt.Fprintf(out, "%s\t%s\t%s\n", dictionary.FormatCUI(code), e.Schema, e.Code)
	}
	return nil
}
