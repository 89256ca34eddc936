package lookup

import (
	"context"
	"fmt"

	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Sentence is one window of upstream tokens.
type Sentence struct {
	Span   token.Span        `json:"span"`
	Tokens []token.BaseToken `json:"tokens"`
}

// Document is a note split into sentences. Text is optional and only used
// to quote covered text in results.
type Document struct {
	ID        string     `json:"id"`
	Text      string     `json:"text,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// SentenceResult holds the annotations of one sentence.
type SentenceResult struct {
	Span        token.Span           `json:"span"`
	Annotations []resolve.Annotation `json:"annotations"`
}

// DocumentResult collects per-sentence results. Failed counts sentences that
// were logged and skipped.
type DocumentResult struct {
	ID        string           `json:"id"`
	Sentences []SentenceResult `json:"sentences"`
	Failed    int              `json:"failed,omitempty"`
}

// Annotations flattens the result in sentence order.
func (r DocumentResult) Annotations() []resolve.Annotation {
	var out []resolve.Annotation
	for _, s := range r.Sentences {
		out = append(out, s.Annotations...)
	}
	return out
}

// ProcessDocument annotates every sentence. A sentence that fails is logged
// and skipped. Cancellation is only observed between sentences; the partial
// result is returned with the context error.
func (e *Engine) ProcessDocument(ctx context.Context, doc Document) (DocumentResult, error) {
	res := DocumentResult{ID: doc.ID}
	for _, s := range doc.Sentences {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		anns, err := e.annotateSentence(ctx, s)
		if err != nil {
			res.Failed++
			e.log.Warn().Err(err).Str("doc", doc.ID).Str("sentence", s.Span.String()).Msg("skipping sentence")
			continue
		}
		res.Sentences = append(res.Sentences, SentenceResult{Span: s.Span, Annotations: anns})
	}
	return res, nil
}

// annotateSentence converts a panic from one bad sentence into an error.
func (e *Engine) annotateSentence(ctx context.Context, s Sentence) (anns []resolve.Annotation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sentence %s: %v", s.Span, r)
		}
	}()
	return e.Annotate(ctx, s)
}

// CoveredText returns the document text under span, or "" when the span
// falls outside it.
func (d Document) CoveredText(span token.Span) string {
	if !span.Valid() || span.End > len(d.Text) {
		return ""
	}
	return d.Text[span.Begin:span.End]
}
