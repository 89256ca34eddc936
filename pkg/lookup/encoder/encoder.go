// Package encoder attaches external codes (semantic types, preferred text,
// vocabulary codes) to discovered concepts.
package encoder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/semantic"
)

// Schema names with special meaning downstream.
const (
	SchemaTUI           = "TUI"
	SchemaPreferredText = "PREFERRED_TEXT"
)

// TermEncoding is one external code for a concept.
type TermEncoding struct {
	Schema string `json:"schema"`
	Code   string `json:"code"`
}

// Encoder resolves a concept code to its encodings.
type Encoder interface {
	Name() string
	Encodings(ctx context.Context, code int64) ([]TermEncoding, error)
	Close() error
}

// Class decides which schema an encoder's values are written under.
type Class int

const (
	// Text values are tagged with the encoder's own name, e.g. SNOMEDCT_US.
	Text Class = iota
	TUI
	PrefText
)

func (c Class) String() string {
	switch c {
	case Text:
		return "text"
	case TUI:
		return "tui"
	case PrefText:
		return "pref_text"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// ParseClass maps a configuration name to a Class. Empty means Text.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "long", "int":
		return Text, nil
	case "tui":
		return TUI, nil
	case "pref_text", "preftext", "preferred_text":
		return PrefText, nil
	}
	return 0, fmt.Errorf("unknown encoder class %q: %w", s, internalerr.ErrInvalidConfig)
}

// Encode turns raw values into encodings for an encoder named name. TUI
// values are normalized to "T047"; blank values are dropped.
func (c Class) Encode(name string, values ...string) []TermEncoding {
	out := make([]TermEncoding, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch c {
		case TUI:
			if code, ok := semantic.ParseTUI(v); ok {
				v = semantic.FormatTUI(code)
			}
			out = append(out, TermEncoding{Schema: SchemaTUI, Code: v})
		case PrefText:
			out = append(out, TermEncoding{Schema: SchemaPreferredText, Code: v})
		default:
			out = append(out, TermEncoding{Schema: name, Code: v})
		}
	}
	return out
}

// Kind names the backing store of an encoder.
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
	return 0, fmt.Errorf("unknown encoder type %q: %w", s, internalerr.ErrInvalidConfig)
}

// Normalize sorts encodings by schema then code and removes duplicates.
func Normalize(encs []TermEncoding) []TermEncoding {
	if len(encs) == 0 {
		return nil
	}
	sort.Slice(encs, func(i, j int) bool {
		if encs[i].Schema != encs[j].Schema {
			return encs[i].Schema < encs[j].Schema
		}
		return encs[i].Code < encs[j].Code
	})
	out := encs[:1]
	for _, e := range encs[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// TUIs returns the semantic type codes among encs.
func TUIs(encs []TermEncoding) []string {
	var out []string
	for _, e := range encs {
		if e.Schema == SchemaTUI {
			out = append(out, e.Code)
		}
	}
	return out
}

// PreferredText joins the preferred text values, or returns "" if there are none.
func PreferredText(encs []TermEncoding) string {
	var parts []string
	for _, e := range encs {
		if e.Schema == SchemaPreferredText {
			parts = append(parts, e.Code)
		}
	}
	return strings.Join(parts, ";")
}
