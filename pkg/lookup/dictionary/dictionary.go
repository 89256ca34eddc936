// Package dictionary defines the term dictionaries the matcher consults and
// the case rules that decide when a text token matches a term token.
package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Dictionary is a read-only term source. Implementations are loaded once and
// must be safe for concurrent reads afterwards.
type Dictionary interface {
	Name() string
	Kind() Kind
	Folding() Folding
	// Candidates returns every entry whose first token matches tok.
	Candidates(ctx context.Context, tok token.LookupToken) ([]Entry, error)
	// Entries returns all entries recorded for a concept code.
	Entries(ctx context.Context, code int64) ([]Entry, error)
	Len() int
	Close() error
}

// Kind names the backing store of a dictionary.
type Kind int

const (
	InMemory Kind = iota
	DelimitedFile
	ExternalQuery
)

func (k Kind) String() string {
	switch k {
	case InMemory:
		return "memory"
	case DelimitedFile:
		return "bsv"
	case ExternalQuery:
		return "sqlite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a configuration type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory", "inmemory":
		return InMemory, nil
	case "bsv", "file", "delimited":
		return DelimitedFile, nil
	case "sqlite", "jdbc", "query":
		return ExternalQuery, nil
	}
	return 0, fmt.Errorf("unknown dictionary type %q: %w", s, internalerr.ErrInvalidConfig)
}

// Term is one raw dictionary row before tokenization.
type Term struct {
	Code int64
	Text string
}

// Entry is a tokenized term with its folded comparison keys.
type Entry struct {
	Code   int64
	Tokens []string

	keys  []string
	exact bool
}

// Len is the number of tokens in the entry.
func (e Entry) Len() int { return len(e.Tokens) }

// Text joins the entry tokens with single spaces.
func (e Entry) Text() string { return strings.Join(e.Tokens, " ") }

// Key returns the folded comparison key of token i.
func (e Entry) Key(i int) string { return e.keys[i] }

// Entries builds entries for terms under the given folding. Terms whose text
// produces no tokens are skipped.
func Entries(f Folding, terms []Term) []Entry {
	out := make([]Entry, 0, len(terms))
	for _, t := range terms {
		toks := TermTokens(t.Text)
		if len(toks) == 0 {
			continue
		}
		out = append(out, f.NewEntry(t.Code, toks))
	}
	return out
}
