package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTUI(t *testing.T) {
	tui, ok := LookupTUI("T047")
	require.True(t, ok)
	assert.Equal(t, "Disease or Syndrome", tui.Name)
	assert.Equal(t, Disorder, tui.Group)
	assert.Equal(t, "T047", tui.ID())

	tui, ok = LookupTUI("Body Part, Organ, or Organ Component")
	require.True(t, ok)
	assert.Equal(t, 23, tui.Code)
	assert.Equal(t, Anatomy, tui.Group)

	_, ok = LookupTUI("T999")
	assert.False(t, ok)
	assert.Len(t, TUIs(), 136)
}

func TestGroups(t *testing.T) {
	g, ok := ParseGroup("attribute")
	require.True(t, ok)
	assert.Equal(t, ClinicalAttribute, g)

	g, ok = ParseGroup("Sign_symptom")
	require.True(t, ok)
	assert.Equal(t, Finding, g)

	_, ok = ParseGroup("Vehicle")
	assert.False(t, ok)

	assert.Equal(t, LabModifier, Best([]Group{Drug, Unknown, LabModifier, Finding}))
	assert.Equal(t, Unknown, Best(nil))
	assert.Equal(t, []Group{Event, Drug, Unknown}, Sorted([]Group{Unknown, Drug, Event, Drug}))
}

func TestSubsumeTable(t *testing.T) {
	s := DefaultSubsumes()
	assert.True(t, s.Subsumes(Drug, Drug))
	assert.True(t, s.Subsumes(Anatomy, Finding))
	assert.True(t, s.Subsumes(Disorder, Drug))
	assert.False(t, s.Subsumes(Drug, Disorder))
	assert.False(t, s.Subsumes(Lab, Drug))
}

func TestReassignment(t *testing.T) {
	r := ParseReassignment([]string{"T184:Disorder", "broken", "T999:Drug", "T047:Nothing", "Qualitative Concept:Lab"}, nil)
	assert.Len(t, r, 2)
	assert.Equal(t, Disorder, r.GroupOf("T184"))
	assert.Equal(t, Lab, r.GroupOf("T080"))
	assert.Equal(t, Disorder, r.GroupOf("T047"))
	assert.Equal(t, Unknown, r.GroupOf("bogus"))

	var none Reassignment
	assert.Equal(t, Finding, none.GroupOf("T184"))
	assert.Equal(t, []Group{Unknown}, none.Groups(nil))
	assert.Equal(t, []Group{Finding, Disorder}, none.Groups([]string{"T047", "T184", "T047"}))
}
