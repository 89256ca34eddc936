package matcher

import (
	"sort"

	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// TermMap groups discovered terms by span.
type TermMap map[token.Span][]DiscoveredTerm

type termKey struct {
	span       token.Span
	code       int64
	dictionary string
}

// Add records t as is. Merge deduplicates and sorts.
func (m TermMap) Add(t DiscoveredTerm) {
	m[t.Span] = append(m[t.Span], t)
}

// Merge unions maps keyed by identical spans. Duplicate terms keep the
// fewest skips and every span's terms come back sorted.
func Merge(maps ...TermMap) TermMap {
	out := make(TermMap)
	for _, tm := range maps {
		for span, terms := range tm {
			out[span] = append(out[span], terms...)
		}
	}
	out.normalize()
	return out
}

// Spans returns the keys ordered by begin ascending, end descending.
func (m TermMap) Spans() []token.Span {
	spans := make([]token.Span, 0, len(m))
	for s := range m {
		spans = append(spans, s)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Less(spans[j]) })
	return spans
}

// Len counts the terms across all spans.
func (m TermMap) Len() int {
	n := 0
	for _, ts := range m {
		n += len(ts)
	}
	return n
}

// Codes returns the distinct concept codes in ascending order.
func (m TermMap) Codes() []int64 {
	seen := make(map[int64]bool)
	var codes []int64
	for _, ts := range m {
		for _, t := range ts {
			if !seen[t.Code] {
				seen[t.Code] = true
				codes = append(codes, t.Code)
			}
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func (m TermMap) normalize() {
	for span, terms := range m {
		best := make(map[termKey]DiscoveredTerm, len(terms))
		for _, t := range terms {
			k := termKey{span: t.Span, code: t.Code, dictionary: t.Dictionary}
			if prev, ok := best[k]; !ok || t.Skips < prev.Skips {
				best[k] = t
			}
		}
		out := make([]DiscoveredTerm, 0, len(best))
		for _, t := range best {
			out = append(out, t)
		}
		sortTerms(out)
		m[span] = out
	}
}

func sortTerms(ts []DiscoveredTerm) {
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Dictionary != b.Dictionary {
			return a.Dictionary < b.Dictionary
		}
		return a.Skips < b.Skips
	})
}
