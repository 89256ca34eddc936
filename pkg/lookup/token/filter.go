package token

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

// DefaultMinSpan is the minimum character length of a lookup token.
const DefaultMinSpan = 3

var (
	verbPOS      = []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "VV", "VVD", "VVG", "VVN", "VVP", "VVZ"}
	nounPOS      = []string{"NN", "NNS", "NP", "NPS", "NNP", "NNPS"}
	adjectivePOS = []string{"JJ", "JJR", "JJS"}
	adverbPOS    = []string{"RB", "RBR", "RBS"}
)

// FilterConfig selects which tokens may anchor or match a term.
type FilterConfig struct {
	MinSpan    int
	Verbs      bool
	Nouns      bool
	Adjectives bool
	Adverbs    bool
	Other      []string
}

// DefaultFilterConfig allows verbs, nouns, adjectives and adverbs.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinSpan:    DefaultMinSpan,
		Verbs:      true,
		Nouns:      true,
		Adjectives: true,
		Adverbs:    true,
	}
}

// Filter decides lookup eligibility for upstream tokens.
type Filter struct {
	minSpan int
	pos     map[string]struct{}
}

// NewFilter builds the part-of-speech allow-list. At least one part of speech is required.
func NewFilter(cfg FilterConfig) (*Filter, error) {
	if cfg.MinSpan < 0 {
		return nil, fmt.Errorf("%w: negative minimum span %d", internalerr.ErrInvalidConfig, cfg.MinSpan)
	}
	pos := make(map[string]struct{})
	add := func(tags []string) {
		for _, t := range tags {
			t = strings.TrimSpace(t)
			if t != "" {
				pos[t] = struct{}{}
			}
		}
	}
	if cfg.Verbs {
		add(verbPOS)
	}
	if cfg.Nouns {
		add(nounPOS)
	}
	if cfg.Adjectives {
		add(adjectivePOS)
	}
	if cfg.Adverbs {
		add(adverbPOS)
	}
	add(cfg.Other)
	if len(pos) == 0 {
		return nil, fmt.Errorf("%w: no parts of speech enabled for lookup", internalerr.ErrInvalidConfig)
	}
	return &Filter{minSpan: cfg.MinSpan, pos: pos}, nil
}

// IsValidLookup reports whether a token is a word of sufficient length whose
// part of speech, when known, is allowed.
func (f *Filter) IsValidLookup(t BaseToken) bool {
	if t.Kind != Word || t.End-t.Begin < f.minSpan {
		return false
	}
	if t.POS == "" {
		return true
	}
	_, ok := f.pos[t.POS]
	return ok
}

// PartsOfSpeech returns the allow-list, sorted.
func (f *Filter) PartsOfSpeech() []string {
	out := make([]string, 0, len(f.pos))
	for p := range f.pos {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
