package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary/bsv"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary/sqlite"
	encsqlite "github.com/cognicore/termlookup/pkg/lookup/encoder/sqlite"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

var (
	buildTerms         string
	buildOut           string
	buildTable         string
	buildTUITable      string
	buildCaseSensitive bool
	buildStem          bool
)

var buildDBCmd = &cobra.Command{
	Use:   "build-db",
	Short: "Build a SQLite dictionary from a BSV term file",
	Long: `Build a SQLite dictionary from a bar-separated term file (CUI|text or
CUI|TUI|text). When rows carry TUIs they are also written to an encoder
table so the same database can serve as a TUI encoder.`,
	Args: cobra.NoArgs,
	RunE: runBuildDB,
}

func init() {
	f := buildDBCmd.Flags()
	f.StringVar(&buildTerms, "terms", "", "BSV term file")
	f.StringVar(&buildOut, "out", "", "SQLite database to write")
	f.StringVar(&buildTable, "table", sqlite.DefaultTable, "dictionary table name")
	f.StringVar(&buildTUITable, "tui-table", "tui", "encoder table for TUI columns")
	f.BoolVar(&buildCaseSensitive, "case-sensitive", true, "keep upper and mixed case terms exact")
	f.BoolVar(&buildStem, "stem", false, "index English stems")
	buildDBCmd.MarkFlagRequired("terms")
	buildDBCmd.MarkFlagRequired("out")
}

func runBuildDB(cmd *cobra.Command, args []string) error {
	log := logging.New("build-db")
	rows, err := bsv.ReadRows(buildTerms)
	if err != nil {
		return err
	}

	folding := dictionary.Insensitive
	switch {
	case buildStem:
		folding = dictionary.Stemmed
	case buildCaseSensitive:
		folding = dictionary.Cased
	}

	terms := make([]dictionary.Term, len(rows))
	tuis := make(map[int64][]string)
	for i, r := range rows {
		terms[i] = r.Term
		if r.TUI != "" {
			tuis[r.Code] = appendUnique(tuis[r.Code], r.TUI)
		}
	}

	n, err := sqlite.Create(cmd.Context(), buildOut, buildTable, folding, terms)
	if err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	log.Info().Int("terms", n).Str("folding", folding.String()).Str("out", buildOut).Msg("dictionary written")

	if len(tuis) > 0 {
		m, err := encsqlite.Create(cmd.Context(), buildOut, buildTUITable, tuis)
		if err != nil {
			return fmt.Errorf("write tui table: %w", err)
		}
		log.Info().Int("rows", m).Str("table", buildTUITable).Msg("tui encoder written")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d terms to %s\n", n, buildOut)
	return nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
