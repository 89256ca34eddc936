package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/termlookup/pkg/lookup"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/resolve"
	"github.com/cognicore/termlookup/pkg/lookup/semantic"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

func sample() (lookup.Document, lookup.DocumentResult) {
	span := token.Span{Begin: 0, End: 22}
	doc := lookup.Document{ID: "note-1", Text: "chronic kidney disease"}
	res := lookup.DocumentResult{
		ID: "note-1",
		Sentences: []lookup.SentenceResult{{
			Span: span,
			Annotations: []resolve.Annotation{{
				Span:  span,
				Group: semantic.Disorder,
				Concepts: []resolve.Concept{{
					Term:          matcher.DiscoveredTerm{Span: span, Code: 105, Dictionary: "umls"},
					Encodings:     []encoder.TermEncoding{{Schema: encoder.SchemaTUI, Code: "T047"}},
					Groups:        []semantic.Group{semantic.Disorder},
					TUIs:          []string{"T047"},
					PreferredText: "Chronic Kidney Diseases",
				}},
			}},
		}},
		Failed: 1,
	}
	return doc, res
}

func TestBuild(t *testing.T) {
	b := New()
	doc, res := sample()
	r := b.Build(doc, res)

	_, err := ulid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, b.RunID(), r.RunID)
	assert.NotEqual(t, r.ID, r.RunID)
	require.Len(t, r.Annotations, 1)

	it := r.Annotations[0]
	assert.Equal(t, "chronic kidney disease", it.Text)
	assert.Equal(t, "Disorder", it.Group)
	assert.Equal(t, "C0000105", it.Concepts[0].CUI)
	assert.Equal(t, []string{"Disorder"}, it.Concepts[0].Groups)
	assert.Equal(t, 1, r.Failed)

	again := b.Build(doc, res)
	assert.Equal(t, r.RunID, again.RunID)
	assert.Less(t, r.ID, again.ID, "ids are monotonic within a run")
}

func TestWriters(t *testing.T) {
	doc, res := sample()
	r := New().Build(doc, res)

	var js bytes.Buffer
	require.NoError(t, WriteJSON(&js, r))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "note-1", decoded["document"])

	var txt bytes.Buffer
	require.NoError(t, WriteText(&txt, r))
	out := txt.String()
	assert.Contains(t, out, "0-22")
	assert.Contains(t, out, "C0000105[umls] Chronic Kidney Diseases")
	assert.Contains(t, out, "1 sentences skipped")
}
