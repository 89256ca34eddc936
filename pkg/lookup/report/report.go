// Package report turns document results into identified, printable records.
package report

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/termlookup/pkg/lookup"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Builder assigns ULIDs to reports and annotations. One builder is one run.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	runID   string
	now     func() time.Time
}

// New creates a builder with a fresh run id.
func New() *Builder {
	b := &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
	b.runID = b.newID()
	return b
}

// RunID identifies every report built by b.
func (b *Builder) RunID() string { return b.runID }

func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Report is one processed document.
type Report struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	Document    string    `json:"document"`
	Created     time.Time `json:"created"`
	Annotations []Item    `json:"annotations"`
	Failed      int       `json:"failed_sentences,omitempty"`
}

// Item is one annotation with its covered text.
type Item struct {
	ID       string     `json:"id"`
	Span     token.Span `json:"span"`
	Text     string     `json:"text,omitempty"`
	Group    string     `json:"group"`
	Concepts []Concept  `json:"concepts"`
}

// Concept is one code on an annotation.
type Concept struct {
	CUI           string                 `json:"cui"`
	Dictionary    string                 `json:"dictionary"`
	Skips         int                    `json:"skips,omitempty"`
	PreferredText string                 `json:"preferred_text,omitempty"`
	Groups        []string               `json:"groups,omitempty"`
	Encodings     []encoder.TermEncoding `json:"encodings,omitempty"`
}

// Build assembles the report of one document.
func (b *Builder) Build(doc lookup.Document, res lookup.DocumentResult) Report {
	r := Report{
		ID:          b.newID(),
		RunID:       b.runID,
		Document:    doc.ID,
		Created:     b.now().UTC(),
		Annotations: []Item{},
		Failed:      res.Failed,
	}
	for _, a := range res.Annotations() {
		item := Item{
			ID:       b.newID(),
			Span:     a.Span,
			Text:     doc.CoveredText(a.Span),
			Group:    a.Group.String(),
			Concepts: make([]Concept, 0, len(a.Concepts)),
		}
		for _, c := range a.Concepts {
			groups := make([]string, len(c.Groups))
			for i, g := range c.Groups {
				groups[i] = g.String()
			}
			item.Concepts = append(item.Concepts, Concept{
				CUI:           dictionary.FormatCUI(c.Term.Code),
				Dictionary:    c.Term.Dictionary,
				Skips:         c.Term.Skips,
				PreferredText: c.PreferredText,
				Groups:        groups,
				Encodings:     c.Encodings,
			})
		}
		r.Annotations = append(r.Annotations, item)
	}
	return r
}

// WriteJSON writes r as one JSON line.
func WriteJSON(w io.Writer, r Report) error {
	return json.NewEncoder(w).Encode(r)
}

// WriteText writes a tab-aligned table of r.
func WriteText(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s (%d annotations)\n", r.Document, len(r.Annotations))
	for _, it := range r.Annotations {
		codes := make([]string, len(it.Concepts))
		for i, c := range it.Concepts {
			codes[i] = c.CUI + "[" + c.Dictionary + "]"
			if c.PreferredText != "" {
				codes[i] += " " + c.PreferredText
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Span, it.Group, it.Text, strings.Join(codes, "; "))
	}
	if r.Failed > 0 {
		fmt.Fprintf(tw, "# %d sentences skipped\n", r.Failed)
	}
	return tw.Flush()
}
