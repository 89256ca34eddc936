// Package bsv loads dictionaries from bar-separated files:
//
//	# comment
//	C0011849|diabetes mellitus
//	C0011849|T047|diabetes mellitus
//
// The text is always the last column. Rows are indexed in memory.
package bsv

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary/memory"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

// Row is one parsed line. TUI is empty for two-column rows.
type Row struct {
	dictionary.Term
	TUI string
}

// Load reads path and indexes it under opts.
func Load(path string, opts memory.Options) (*memory.Dictionary, error) {
	terms, err := ReadTerms(path)
	if err != nil {
		return nil, err
	}
	opts.Kind = dictionary.DelimitedFile
	return memory.New(opts, terms)
}

// ReadTerms returns the terms of a dictionary file.
func ReadTerms(path string) ([]dictionary.Term, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	terms := make([]dictionary.Term, len(rows))
	for i, r := range rows {
		terms[i] = r.Term
	}
	return terms, nil
}

// ReadRows parses every row of path. A malformed row fails the whole file.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary file: %w: %v", internalerr.ErrLoad, err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary file %s: %w", path, err)
	}
	return rows, nil
}

func parseRow(line string) (Row, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return Row{}, fmt.Errorf("want 2 or 3 columns, got %d: %w", len(parts), internalerr.ErrInvalidInput)
	}
	code, err := dictionary.ParseCUI(parts[0])
	if err != nil {
		return Row{}, err
	}
	text := strings.TrimSpace(parts[len(parts)-1])
	if text == "" {
		return Row{}, fmt.Errorf("empty term text: %w", internalerr.ErrInvalidInput)
	}
	row := Row{Term: dictionary.Term{Code: code, Text: text}}
	if len(parts) == 3 {
		row.TUI = strings.TrimSpace(parts[1])
	}
	return row, nil
}
