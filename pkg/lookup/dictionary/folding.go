package dictionary

import (
	"fmt"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Folding is the case rule a dictionary applies when comparing text tokens
// with entry tokens.
type Folding int

const (
	// Cased: an all lower-case term matches any casing of its tokens, while a
	// term carrying upper-case letters must match the text exactly.
	Cased Folding = iota
	// Insensitive compares lower-cased forms.
	Insensitive
	// Stemmed compares English stems of the lower-cased forms.
	Stemmed
)

func (f Folding) String() string {
	switch f {
	case Cased:
		return "cased"
	case Insensitive:
		return "insensitive"
	case Stemmed:
		return "stemmed"
	default:
		return fmt.Sprintf("Folding(%d)", int(f))
	}
}

// ParseFolding maps a configuration name to a Folding. Empty means Cased.
func ParseFolding(s string) (Folding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cased":
		return Cased, nil
	case "insensitive", "lower":
		return Insensitive, nil
	case "stemmed", "stem":
		return Stemmed, nil
	}
	return 0, fmt.Errorf("unknown case folding %q: %w", s, internalerr.ErrInvalidConfig)
}

// NewEntry folds already split term tokens into an Entry.
func (f Folding) NewEntry(code int64, tokens []string) Entry {
	e := Entry{
		Code:   code,
		Tokens: make([]string, len(tokens)),
		keys:   make([]string, len(tokens)),
	}
	for i, t := range tokens {
		e.Tokens[i] = token.Normalize(t)
	}
	if f == Cased {
		_, allLower := token.CaseClass(strings.Join(e.Tokens, ""))
		e.exact = !allLower
	}
	for i, t := range e.Tokens {
		e.keys[i] = f.fold(t, e.exact)
	}
	return e
}

func (f Folding) fold(text string, exact bool) string {
	switch f {
	case Insensitive:
		return token.Lower(text)
	case Stemmed:
		return token.Stem(token.Lower(text))
	default:
		if exact {
			return text
		}
		return token.Lower(text)
	}
}

// IndexKey is the key an entry is stored under: its first folded token.
func (f Folding) IndexKey(e Entry) string {
	if len(e.keys) == 0 {
		return ""
	}
	return e.keys[0]
}

// QueryKeys lists the index keys that may hold candidates for tok.
func (f Folding) QueryKeys(tok token.LookupToken) []string {
	switch f {
	case Insensitive:
		return []string{tok.Lower()}
	case Stemmed:
		return []string{tok.Stem()}
	default:
		if tok.Text() == tok.Lower() {
			return []string{tok.Text()}
		}
		return []string{tok.Text(), tok.Lower()}
	}
}

// Match reports whether tok matches token i of e.
func (f Folding) Match(tok token.LookupToken, e Entry, i int) bool {
	if i < 0 || i >= len(e.keys) {
		return false
	}
	switch f {
	case Insensitive:
		return tok.Lower() == e.keys[i]
	case Stemmed:
		return tok.Stem() == e.keys[i]
	default:
		if e.exact {
			return tok.Text() == e.keys[i]
		}
		return tok.Lower() == e.keys[i]
	}
}
