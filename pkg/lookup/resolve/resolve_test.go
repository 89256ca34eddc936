package resolve

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/semantic"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

func term(b, e int, code int64, dict string) matcher.DiscoveredTerm {
	return matcher.DiscoveredTerm{Span: token.Span{Begin: b, End: e}, Code: code, Dictionary: dict}
}

func tuis(pairs map[int64]string) map[int64][]encoder.TermEncoding {
	out := make(map[int64][]encoder.TermEncoding)
	for code, tui := range pairs {
		out[code] = encoder.TUI.Encode("tui", tui)
	}
	return out
}

func spansOf(anns []Annotation) []token.Span {
	var out []token.Span
	for _, a := range anns {
		out = append(out, a.Span)
	}
	return out
}

func single(ts ...matcher.DiscoveredTerm) matcher.TermMap {
	tm := make(matcher.TermMap)
	for _, t := range ts {
		tm.Add(t)
	}
	return matcher.Merge(tm)
}

func TestAlikeDropsContainedSameGroup(t *testing.T) {
	tm := single(term(0, 22, 105, "umls"), term(8, 22, 300, "umls"))
	encs := tuis(map[int64]string{105: "T047", 300: "T047"})

	got := New(Alike, nil).Resolve(tm, encs)
	require.Len(t, got, 1)
	assert.Equal(t, token.Span{Begin: 0, End: 22}, got[0].Span)
	assert.Equal(t, semantic.Disorder, got[0].Group)
	assert.Equal(t, []string{"T047"}, got[0].Concepts[0].TUIs)

	none := New(None, nil).Resolve(tm, encs)
	assert.Equal(t, []token.Span{{Begin: 0, End: 22}, {Begin: 8, End: 22}}, spansOf(none))
}

func TestSemanticCrossGroup(t *testing.T) {
	// a drug mention inside a disorder mention
	tm := single(term(0, 30, 1, "umls"), term(10, 19, 2, "umls"))
	encs := tuis(map[int64]string{1: "T047", 2: "T121"})

	assert.Len(t, New(Alike, nil).Resolve(tm, encs), 2)
	got := New(Semantic, nil).Resolve(tm, encs)
	assert.Equal(t, []token.Span{{Begin: 0, End: 30}}, spansOf(got))

	// the table is directional: a drug span does not absorb a disorder
	encs = tuis(map[int64]string{1: "T121", 2: "T047"})
	assert.Len(t, New(Semantic, nil).Resolve(tm, encs), 2)
}

func TestReassignmentOnlyAffectsContainment(t *testing.T) {
	tm := single(term(0, 22, 105, "umls"), term(8, 14, 200, "umls"))
	encs := tuis(map[int64]string{105: "T047", 200: "T184"})

	assert.Len(t, New(Alike, nil).Resolve(tm, encs), 2)

	reassign := semantic.ParseReassignment([]string{"T184:Disorder"}, nil)
	got := New(Alike, reassign).Resolve(tm, encs)
	assert.Equal(t, []token.Span{{Begin: 0, End: 22}}, spansOf(got))

	// a kept concept still reports its default group
	alone := New(Alike, reassign).Resolve(single(term(8, 14, 200, "umls")), encs)
	require.Len(t, alone, 1)
	assert.Equal(t, semantic.Finding, alone[0].Group)
	assert.Equal(t, []semantic.Group{semantic.Finding}, alone[0].Concepts[0].Groups)
}

func TestColocatedConceptsSurviveEveryPolicy(t *testing.T) {
	a := matcher.TermMap{{Begin: 0, End: 8}: {term(0, 8, 10, "first")}}
	b := matcher.TermMap{{Begin: 0, End: 8}: {term(0, 8, 20, "second")}}
	tm := matcher.Merge(a, b)
	encs := tuis(map[int64]string{10: "T047", 20: "T047"})

	for _, p := range []Policy{None, Alike, Semantic} {
		got := New(p, nil).Resolve(tm, encs)
		require.Len(t, got, 1, p.String())
		require.Len(t, got[0].Concepts, 2, p.String())
		assert.Equal(t, int64(10), got[0].Concepts[0].Term.Code)
		assert.Equal(t, int64(20), got[0].Concepts[1].Term.Code)
	}
}

func TestConceptsWithoutEncodingsAreUnknown(t *testing.T) {
	tm := single(term(0, 22, 105, "umls"), term(8, 14, 200, "umls"))
	got := New(Alike, nil).Resolve(tm, nil)
	require.Len(t, got, 1)
	assert.Equal(t, semantic.Unknown, got[0].Group)
	assert.Empty(t, got[0].Concepts[0].Encodings)

	assert.Len(t, New(None, nil).Resolve(tm, nil), 2)
}

func TestPreferredTextAttached(t *testing.T) {
	tm := single(term(0, 8, 10, "umls"))
	encs := map[int64][]encoder.TermEncoding{10: encoder.PrefText.Encode("pref", "Diabetes Mellitus")}
	got := New(None, nil).Resolve(tm, encs)
	require.Len(t, got, 1)
	assert.Equal(t, "Diabetes Mellitus", got[0].Concepts[0].PreferredText)
}

func fixture() (matcher.TermMap, map[int64][]encoder.TermEncoding) {
	tm := single(
		term(0, 22, 1, "a"),
		term(0, 7, 2, "a"),
		term(8, 22, 3, "b"),
		term(8, 14, 4, "a"),
		term(8, 14, 5, "b"),
		term(15, 22, 6, "a"),
		term(30, 40, 7, "a"),
		term(32, 38, 8, "b"),
	)
	encs := tuis(map[int64]string{1: "T047", 2: "T079", 3: "T047", 4: "T023", 5: "T121", 6: "T184", 7: "T121", 8: "T034"})
	return tm, encs
}

func TestIdempotent(t *testing.T) {
	tm, encs := fixture()
	for _, p := range []Policy{None, Alike, Semantic} {
		r := New(p, nil)
		first := r.Resolve(tm, encs)
		second := r.Resolve(ToTermMap(first), encs)
		assert.Equal(t, first, second, p.String())
	}
}

func TestDeterministicUnderShuffledInput(t *testing.T) {
	tm, encs := fixture()
	var terms []matcher.DiscoveredTerm
	for _, ts := range tm {
		terms = append(terms, ts...)
	}
	want := New(Semantic, nil).Resolve(tm, encs)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(terms), func(a, b int) { terms[a], terms[b] = terms[b], terms[a] })
		parts := []matcher.TermMap{{}, {}, {}}
		for j, dt := range terms {
			parts[j%3].Add(dt)
		}
		got := New(Semantic, nil).Resolve(matcher.Merge(parts...), encs)
		require.Equal(t, want, got)
	}
}

func TestSemanticFixture(t *testing.T) {
	tm, encs := fixture()
	got := New(Semantic, nil).Resolve(tm, encs)
	// 0-7 Time and 8-14 Anatomy are not absorbed by a Disorder container;
	// 8-22, 8-14 Drug and 15-22 Finding are. 32-38 Lab sits inside a Drug span.
	assert.Equal(t, []token.Span{{Begin: 0, End: 22}, {Begin: 0, End: 7}, {Begin: 8, End: 14}, {Begin: 30, End: 40}}, spansOf(got))
	require.Len(t, got[2].Concepts, 1)
	assert.Equal(t, int64(4), got[2].Concepts[0].Term.Code)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Semantic, p)
	_, err = ParsePolicy("greedy")
	assert.Error(t, err)

	assert.Equal(t, Semantic, PolicyFromFlags(false, true))
	assert.Equal(t, Alike, PolicyFromFlags(true, false))
	assert.Equal(t, None, PolicyFromFlags(false, false))
}
