package lookup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/dictionary/memory"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	encmemory "github.com/cognicore/termlookup/pkg/lookup/encoder/memory"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// tokens splits on single spaces and tags punctuation-only words.
func tokens(text string) []token.BaseToken {
	var out []token.BaseToken
	offset := 0
	for _, w := range strings.Split(text, " ") {
		kind := token.Word
		if strings.IndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			kind = token.Punctuation
		}
		out = append(out, token.BaseToken{Span: token.Span{Begin: offset, End: offset + len(w)}, Text: w, Kind: kind})
		offset += len(w) + 1
	}
	return out
}

func memDict(t *testing.T, name string, terms ...dictionary.Term) dictionary.Dictionary {
	t.Helper()
	d, err := memory.New(memory.Options{Name: name, Folding: dictionary.Cased}, terms)
	require.NoError(t, err)
	return d
}

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestChronicKidneyDisease(t *testing.T) {
	e := newEngine(t, Options{Dictionaries: []dictionary.Dictionary{
		memDict(t, "umls", dictionary.Term{Code: 105, Text: "chronic kidney disease"}),
	}})

	tm, err := e.FindTerms(context.Background(), tokens("chronic kidney disease"))
	require.NoError(t, err)
	assert.Equal(t, matcher.TermMap{
		{Begin: 0, End: 22}: {{Span: token.Span{Begin: 0, End: 22}, Code: 105, Dictionary: "umls", Skips: 0}},
	}, tm)
}

func TestSkippedComma(t *testing.T) {
	budget := matcher.Budget{ConsecutiveSkipMax: 2, TotalSkipMax: 1}
	e := newEngine(t, Options{
		Dictionaries: []dictionary.Dictionary{memDict(t, "umls", dictionary.Term{Code: 200, Text: "kidney disease"})},
		Budget:       &budget,
	})

	tm, err := e.FindTerms(context.Background(), tokens("kidney , disease"))
	require.NoError(t, err)
	terms := tm[token.Span{Begin: 0, End: 16}]
	require.Len(t, terms, 1)
	assert.Equal(t, int64(200), terms[0].Code)
	assert.Equal(t, 1, terms[0].Skips)
}

func TestTwoDictionariesSameSpan(t *testing.T) {
	for _, p := range []resolve.Policy{resolve.None, resolve.Alike, resolve.Semantic} {
		e := newEngine(t, Options{
			Dictionaries: []dictionary.Dictionary{
				memDict(t, "first", dictionary.Term{Code: 10, Text: "diabetes"}),
				memDict(t, "second", dictionary.Term{Code: 20, Text: "diabetes"}),
			},
			Resolver: resolve.New(p, nil),
			Parallel: true,
		})
		anns, err := e.Annotate(context.Background(), Sentence{Tokens: tokens("diabetes")})
		require.NoError(t, err)
		require.Len(t, anns, 1, p.String())
		require.Len(t, anns[0].Concepts, 2, p.String())
		assert.Equal(t, "first", anns[0].Concepts[0].Term.Dictionary)
		assert.Equal(t, "second", anns[0].Concepts[1].Term.Dictionary)
	}
}

func fixtureDicts(t *testing.T) []dictionary.Dictionary {
	return []dictionary.Dictionary{
		memDict(t, "a",
			dictionary.Term{Code: 105, Text: "chronic kidney disease"},
			dictionary.Term{Code: 200, Text: "kidney"},
			dictionary.Term{Code: 300, Text: "kidney disease"},
		),
		memDict(t, "b",
			dictionary.Term{Code: 300, Text: "kidney disease"},
			dictionary.Term{Code: 400, Text: "disease"},
			dictionary.Term{Code: 500, Text: "chronic disease"},
		),
		memDict(t, "c",
			dictionary.Term{Code: 600, Text: "CKD"},
			dictionary.Term{Code: 105, Text: "chronic kidney disease"},
		),
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	input := tokens("stage 3 chronic kidney , disease ( CKD ) with chronic disease")
	seq := newEngine(t, Options{Dictionaries: fixtureDicts(t)})
	par := newEngine(t, Options{Dictionaries: fixtureDicts(t), Parallel: true})

	want, err := seq.FindTerms(context.Background(), input)
	require.NoError(t, err)
	require.NotEmpty(t, want)
	for i := 0; i < 10; i++ {
		got, err := par.FindTerms(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	wantAnns, err := seq.Annotate(context.Background(), Sentence{Tokens: input})
	require.NoError(t, err)
	gotAnns, err := par.Annotate(context.Background(), Sentence{Tokens: input})
	require.NoError(t, err)
	assert.Equal(t, wantAnns, gotAnns)
}

func TestDictionaryOrderDoesNotMatter(t *testing.T) {
	input := tokens("chronic kidney disease")
	d := fixtureDicts(t)
	a := newEngine(t, Options{Dictionaries: []dictionary.Dictionary{d[0], d[1], d[2]}})
	want, err := a.Annotate(context.Background(), Sentence{Tokens: input})
	require.NoError(t, err)

	d = fixtureDicts(t)
	b := newEngine(t, Options{Dictionaries: []dictionary.Dictionary{d[2], d[0], d[1]}, Parallel: true})
	got, err := b.Annotate(context.Background(), Sentence{Tokens: input})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAnnotateAttachesEncodings(t *testing.T) {
	tuis := encmemory.New("tui", encoder.TUI, map[int64][]string{105: {"T047"}, 200: {"T023"}, 300: {"T047"}})
	pref := encmemory.New("pref", encoder.PrefText, map[int64][]string{105: {"Chronic Kidney Diseases"}})
	store, err := encoder.NewStore([]encoder.Encoder{tuis, pref}, 0, nil)
	require.NoError(t, err)

	e := newEngine(t, Options{
		Dictionaries: []dictionary.Dictionary{memDict(t, "umls",
			dictionary.Term{Code: 105, Text: "chronic kidney disease"},
			dictionary.Term{Code: 200, Text: "kidney"},
			dictionary.Term{Code: 300, Text: "kidney disease"},
		)},
		Encoders: store,
		Resolver: resolve.New(resolve.Alike, nil),
	})
	anns, err := e.Annotate(context.Background(), Sentence{Tokens: tokens("chronic kidney disease")})
	require.NoError(t, err)

	// kidney disease (Disorder) is absorbed, kidney (Anatomy) is not
	require.Len(t, anns, 2)
	assert.Equal(t, token.Span{Begin: 0, End: 22}, anns[0].Span)
	assert.Equal(t, "Chronic Kidney Diseases", anns[0].Concepts[0].PreferredText)
	assert.Equal(t, token.Span{Begin: 8, End: 14}, anns[1].Span)
	assert.Equal(t, []string{"T023"}, anns[1].Concepts[0].TUIs)
}

type panicky struct{ dictionary.Dictionary }

func (panicky) Candidates(context.Context, token.LookupToken) ([]dictionary.Entry, error) {
	panic("index out of range")
}

func TestProcessDocumentSkipsFailedSentences(t *testing.T) {
	good := memDict(t, "good", dictionary.Term{Code: 10, Text: "diabetes"})
	bad := panicky{memDict(t, "bad", dictionary.Term{Code: 1, Text: "never"})}

	for _, parallel := range []bool{false, true} {
		e := newEngine(t, Options{Dictionaries: []dictionary.Dictionary{good}, Parallel: parallel})
		doc := Document{ID: "note-1", Sentences: []Sentence{
			{Span: token.Span{Begin: 0, End: 8}, Tokens: tokens("diabetes")},
		}}
		res, err := e.ProcessDocument(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Failed)
		assert.Len(t, res.Annotations(), 1)

		e = newEngine(t, Options{Dictionaries: []dictionary.Dictionary{good, bad}, Parallel: parallel})
		res, err = e.ProcessDocument(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.Empty(t, res.Sentences)
	}
}

func TestProcessDocumentStopsBetweenSentences(t *testing.T) {
	e := newEngine(t, Options{Dictionaries: []dictionary.Dictionary{memDict(t, "umls", dictionary.Term{Code: 10, Text: "diabetes"})}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.ProcessDocument(ctx, Document{ID: "n", Sentences: []Sentence{{Tokens: tokens("diabetes")}}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, res.Sentences)
}

func TestNewValidates(t *testing.T) {
	_, err := New(Options{})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))

	d := memDict(t, "dup")
	_, err = New(Options{Dictionaries: []dictionary.Dictionary{d, d}})
	assert.True(t, errors.Is(err, internalerr.ErrDuplicate))

	bad := matcher.Budget{TotalSkipMax: -1}
	_, err = New(Options{Dictionaries: []dictionary.Dictionary{d}, Budget: &bad})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
}

func TestCoveredText(t *testing.T) {
	doc := Document{Text: "chronic kidney disease"}
	assert.Equal(t, "kidney", doc.CoveredText(token.Span{Begin: 8, End: 14}))
	assert.Equal(t, "", doc.CoveredText(token.Span{Begin: 8, End: 99}))
}
