package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

func word(b, e int, text string) BaseToken {
	return BaseToken{Span: Span{Begin: b, End: e}, Text: text, Kind: Word}
}

func TestSpanOrderingAndContainment(t *testing.T) {
	outer := Span{Begin: 0, End: 22}
	inner := Span{Begin: 8, End: 14}
	prefix := Span{Begin: 0, End: 7}

	assert.True(t, outer.StrictlyContains(inner))
	assert.True(t, outer.StrictlyContains(prefix))
	assert.False(t, outer.StrictlyContains(outer))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))

	assert.True(t, outer.Less(prefix), "longer span at the same begin sorts first")
	assert.True(t, prefix.Less(inner))
	assert.Equal(t, "0-22", outer.String())
	assert.Equal(t, 0, Span{Begin: 5, End: 2}.Len())
}

func TestFilterRequiresPartOfSpeech(t *testing.T) {
	_, err := NewFilter(FilterConfig{MinSpan: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))

	f, err := NewFilter(FilterConfig{MinSpan: 3, Other: []string{"CD"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"CD"}, f.PartsOfSpeech())
}

func TestFilterIsValidLookup(t *testing.T) {
	f, err := NewFilter(DefaultFilterConfig())
	require.NoError(t, err)

	assert.True(t, f.IsValidLookup(word(0, 6, "kidney")))
	assert.False(t, f.IsValidLookup(word(0, 2, "of")), "shorter than minimum span")
	assert.False(t, f.IsValidLookup(BaseToken{Span: Span{0, 1}, Text: ",", Kind: Punctuation}))
	assert.False(t, f.IsValidLookup(BaseToken{Span: Span{0, 3}, Text: "100", Kind: Number}))

	tagged := word(0, 6, "kidney")
	tagged.POS = "NN"
	assert.True(t, f.IsValidLookup(tagged))
	tagged.POS = "DT"
	assert.False(t, f.IsValidLookup(tagged))
}

func TestBuildDropsNewlinesAndSorts(t *testing.T) {
	f, err := NewFilter(DefaultFilterConfig())
	require.NoError(t, err)

	tokens := []BaseToken{
		word(8, 14, "kidney"),
		{Span: Span{7, 8}, Text: "\n", Kind: Newline},
		word(0, 7, "Chronic"),
		word(15, 22, "disease"),
	}
	out := Build(f, tokens)
	require.Len(t, out, 3)
	assert.Equal(t, "Chronic", out[0].Text())
	assert.Equal(t, "chronic", out[0].Lower())
	assert.Equal(t, "kidney", out[1].Text())
	assert.Equal(t, "disease", out[2].Text())
	for _, tok := range out {
		assert.True(t, tok.Valid(), tok.String())
	}
}

func TestBuildMarksMalformedTokensInvalid(t *testing.T) {
	f, err := NewFilter(DefaultFilterConfig())
	require.NoError(t, err)

	tokens := []BaseToken{
		word(0, 6, "kidney"),
		word(4, 10, "overlap"),
		word(12, 11, "backwards"),
		word(20, 24, ""),
		word(25, 32, "disease"),
	}
	out := Build(f, tokens)
	require.Len(t, out, 5)
	assert.True(t, out[0].Valid())
	assert.False(t, out[1].Valid())
	assert.False(t, out[2].Valid())
	assert.False(t, out[3].Valid())
	assert.True(t, out[4].Valid())

	for i, malformed := range []bool{false, true, true, true, false} {
		assert.Equal(t, malformed, out[i].Malformed(), out[i].String())
	}
}

func TestShortWordIsInvalidButWellFormed(t *testing.T) {
	f, err := NewFilter(DefaultFilterConfig())
	require.NoError(t, err)
	out := Build(f, []BaseToken{word(0, 2, "up"), {Span: Span{Begin: 2, End: 3}, Text: "-", Kind: Punctuation}})
	require.Len(t, out, 2)
	for _, tok := range out {
		assert.False(t, tok.Valid())
		assert.False(t, tok.Malformed())
	}
}

func TestLookupTokenCaseAndStem(t *testing.T) {
	tok := NewLookupToken(Span{0, 4}, "COPD", true)
	assert.Equal(t, "COPD", tok.Text())
	assert.Equal(t, "copd", tok.Lower())

	upper, lower := CaseClass("COPD")
	assert.True(t, upper)
	assert.False(t, lower)
	upper, lower = CaseClass("Crohn's")
	assert.False(t, upper)
	assert.False(t, lower)

	plural := NewLookupToken(Span{0, 8}, "diseases", true)
	assert.Equal(t, Stem("disease"), plural.Stem())
}

func TestNormalizeComposesAccents(t *testing.T) {
	decomposed := "Sjo\u0308gren"
	assert.Equal(t, "Sj\u00f6gren", Normalize(decomposed))
}

func TestSplitKeepsEveryRune(t *testing.T) {
	for _, w := range []string{"Crohn's", "follow-up", "non-small", "0.25", "x/y", "pre-"} {
		assert.Equal(t, w, strings.Join(Split(w), ""), w)
	}
	assert.Equal(t, []string{"Crohn", "'s"}, Split("Crohn's"))
	assert.Equal(t, []string{"follow", "-", "up"}, Split("follow-up"))
	assert.Equal(t, []string{"non-small"}, Split("non-small"))
}
