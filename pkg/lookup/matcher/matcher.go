// Package matcher aligns dictionary entries against a sentence's lookup
// tokens, tolerating a bounded number of skipped tokens.
package matcher

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// DiscoveredTerm is one dictionary entry found in the text.
type DiscoveredTerm struct {
	Span       token.Span `json:"span"`
	Code       int64      `json:"code"`
	Dictionary string     `json:"dictionary"`
	Skips      int        `json:"skips"`
}

// Matcher runs entry alignment. It holds no per-sentence state.
type Matcher struct {
	log zerolog.Logger
}

// New returns a matcher. A nil logger uses the "matcher" component logger.
func New(logger *zerolog.Logger) *Matcher {
	return &Matcher{log: logging.Or(logger, "matcher")}
}

// FindTerms returns every entry of dict that aligns with tokens within budget.
// A failing dictionary query is logged and treated as no candidates.
func (m *Matcher) FindTerms(ctx context.Context, dict dictionary.Dictionary, tokens []token.LookupToken, budget Budget) TermMap {
	out := make(TermMap)
	folding := dict.Folding()
	for i, anchor := range tokens {
		if !anchor.Valid() {
			continue
		}
		candidates, err := dict.Candidates(ctx, anchor)
		if err != nil {
			m.log.Warn().Err(err).
				Str("dictionary", dict.Name()).
				Str("token", anchor.String()).
				Msg("dictionary lookup failed")
			continue
		}
		for _, e := range candidates {
			if !folding.Match(anchor, e, 0) {
				continue
			}
			s, ok := align(folding, e, tokens, start(i, anchor), budget)
			if !ok {
				continue
			}
			out.Add(DiscoveredTerm{
				Span:       token.Span{Begin: anchor.Begin(), End: s.end},
				Code:       e.Code,
				Dictionary: dict.Name(),
				Skips:      s.skips,
			})
		}
	}
	out.normalize()
	return out
}

// align walks the remaining entry tokens. Past the anchor, any well-formed
// token may match by text; lookup validity only decides anchoring. The match
// ends on the last matched token, so trailing skips never widen the span.
func align(f dictionary.Folding, e dictionary.Entry, tokens []token.LookupToken, s state, b Budget) (state, bool) {
	for s.entry < e.Len() {
		if s.doc >= len(tokens) {
			return s, false
		}
		tok := tokens[s.doc]
		switch {
		case !tok.Malformed() && f.Match(tok, e, s.entry):
			s = s.advance(tok)
		case s.canSkip(b):
			s = s.skip()
		default:
			return s, false
		}
	}
	return s, true
}
