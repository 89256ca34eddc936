// Package resolve turns discovered terms into annotations, discarding
// contained spans according to a subsumption policy.
package resolve

import (
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/matcher"
	"github.com/cognicore/termlookup/pkg/lookup/semantic"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Concept is a surviving discovered term with its encodings.
type Concept struct {
	Term          matcher.DiscoveredTerm `json:"term"`
	Encodings     []encoder.TermEncoding `json:"encodings"`
	Groups        []semantic.Group       `json:"groups"`
	TUIs          []string               `json:"tuis,omitempty"`
	PreferredText string                 `json:"preferred_text,omitempty"`
}

// Annotation is one finalized span.
type Annotation struct {
	Span     token.Span     `json:"span"`
	Group    semantic.Group `json:"group"`
	Concepts []Concept      `json:"concepts"`
}

// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	Policy   Policy
	Reassign semantic.Reassignment
	Subsumes semantic.SubsumeTable
}

// New returns a resolver using the default subsume table.
func New(policy Policy, reassign semantic.Reassignment) *Resolver {
	return &Resolver{Policy: policy, Reassign: reassign, Subsumes: semantic.DefaultSubsumes()}
}

type survivor struct {
	span   token.Span
	groups []semantic.Group
}

// Resolve applies the policy to tm. Spans are visited longest first at each
// begin offset, so every container is decided before what it contains. A
// term is dropped only by a surviving term on a strictly larger span;
// concepts sharing a span never remove each other.
func (r *Resolver) Resolve(tm matcher.TermMap, encodings map[int64][]encoder.TermEncoding) []Annotation {
	var (
		out       []Annotation
		survivors []survivor
	)
	for _, span := range tm.Spans() {
		var (
			concepts []Concept
			kept     []semantic.Group
		)
		for _, term := range tm[span] {
			encs := encodings[term.Code]
			tuis := encoder.TUIs(encs)
			testGroups := r.Reassign.Groups(tuis)
			if r.subsumed(span, testGroups, survivors) {
				continue
			}
			kept = append(kept, testGroups...)
			concepts = append(concepts, Concept{
				Term:          term,
				Encodings:     encs,
				Groups:        semantic.Reassignment(nil).Groups(tuis),
				TUIs:          tuis,
				PreferredText: encoder.PreferredText(encs),
			})
		}
		if len(concepts) == 0 {
			continue
		}
		survivors = append(survivors, survivor{span: span, groups: semantic.Sorted(kept)})

		var all []semantic.Group
		for _, c := range concepts {
			all = append(all, c.Groups...)
		}
		out = append(out, Annotation{Span: span, Group: semantic.Best(all), Concepts: concepts})
	}
	return out
}

func (r *Resolver) subsumed(span token.Span, groups []semantic.Group, survivors []survivor) bool {
	if r.Policy == None {
		return false
	}
	for _, s := range survivors {
		if !s.span.StrictlyContains(span) {
			continue
		}
		for _, outer := range s.groups {
			for _, inner := range groups {
				if r.absorbs(outer, inner) {
					return true
				}
			}
		}
	}
	return false
}

func (r *Resolver) absorbs(outer, inner semantic.Group) bool {
	if r.Policy == Semantic {
		return r.Subsumes.Subsumes(outer, inner)
	}
	return outer == inner
}

// ToTermMap recovers the discovered terms behind annotations.
func ToTermMap(anns []Annotation) matcher.TermMap {
	tm := make(matcher.TermMap)
	for _, a := range anns {
		for _, c := range a.Concepts {
			tm.Add(c.Term)
		}
	}
	return tm
}
