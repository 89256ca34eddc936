package token

import (
	"sort"
	"unicode"
)

// Kind is the upstream tokenizer's category for a token.
type Kind int

const (
	Word Kind = iota
	Number
	Punctuation
	Symbol
	Contraction
	Newline
)

var kindNames = [...]string{"word", "number", "punctuation", "symbol", "contraction", "newline"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// BaseToken is one token as delivered by the upstream tokenizer.
type BaseToken struct {
	Span
	Text string
	Kind Kind
	POS  string // part of speech, empty when untagged
}

// LookupToken is the immutable, normalized view of a token used for matching.
type LookupToken struct {
	span      Span
	text      string
	lower     string
	stem      string
	valid     bool
	malformed bool
}

// NewLookupToken normalizes text and records whether the token may take part in lookup.
func NewLookupToken(span Span, text string, valid bool) LookupToken {
	text = Normalize(text)
	lower := Lower(text)
	return LookupToken{
		span:  span,
		text:  text,
		lower: lower,
		stem:  Stem(lower),
		valid: valid,
	}
}

func (t LookupToken) Span() Span { return t.span }
func (t LookupToken) Begin() int { return t.span.Begin }
func (t LookupToken) End() int { return t.span.End }
func (t LookupToken) Text() string { return t.text }
func (t LookupToken) Lower() string { return t.lower }
func (t LookupToken) Stem() string { return t.stem }
func (t LookupToken) Valid() bool { return t.valid }
func (t LookupToken) String() string { return t.text + "@" + t.span.String() }

// Malformed reports a token with bad bounds, no text, or overlapping its
// predecessor. It never matches.
func (t LookupToken) Malformed() bool { return t.malformed }

// Build converts a sentence's upstream tokens into lookup tokens.
// Newlines are dropped, the rest is ordered by begin offset. A malformed token
// (bad bounds, empty text, overlapping its predecessor) stays in the sequence
// as an invalid token so it can only be skipped.
func Build(f *Filter, tokens []BaseToken) []LookupToken {
	kept := make([]BaseToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == Newline {
			continue
		}
		kept = append(kept, t)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Begin < kept[j].Begin
	})

	out := make([]LookupToken, 0, len(kept))
	prevEnd := -1
	for _, t := range kept {
		bad := malformed(t, prevEnd)
		lt := NewLookupToken(t.Span, t.Text, !bad && f.IsValidLookup(t))
		lt.malformed = bad
		out = append(out, lt)
		if t.End > prevEnd {
			prevEnd = t.End
		}
	}
	return out
}

func malformed(t BaseToken, prevEnd int) bool {
	if !t.Span.Valid() || t.Text == "" {
		return true
	}
	return t.Begin < prevEnd
}

// CaseClass reports whether text is all upper-case or all lower-case.
// Text with no cased letters is neither.
func CaseClass(text string) (allUpper, allLower bool) {
	anyUpper, anyLower := false, false
	for _, r := range text {
		if unicode.IsUpper(r) {
			anyUpper = true
		} else if unicode.IsLower(r) {
			anyLower = true
		}
		if anyUpper && anyLower {
			break
		}
	}
	return anyUpper && !anyLower, anyLower && !anyUpper
}
