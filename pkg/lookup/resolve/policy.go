package resolve

import (
	"fmt"
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
)

// Policy selects how contained spans are discarded.
type Policy int

const (
	// None keeps every discovered span.
	None Policy = iota
	// Alike drops a contained term when a containing term has the same group.
	Alike
	// Semantic also lets a containing group absorb the groups its subsume
	// table lists.
	Semantic
)

func (p Policy) String() string {
	switch p {
	case None:
		return "none"
	case Alike:
		return "alike"
	case Semantic:
		return "semantic"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// MarshalText writes the policy name.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePolicy maps a configuration name to a Policy. Empty means Semantic.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return None, nil
	case "alike", "subsume":
		return Alike, nil
	case "", "semantic", "semantics":
		return Semantic, nil
	}
	return 0, fmt.Errorf("unknown subsumption mode %q: %w", s, internalerr.ErrInvalidConfig)
}

// PolicyFromFlags maps the two legacy switches. Semantic subsumption wins
// over plain subsumption.
func PolicyFromFlags(subsume, subsumeSemantics bool) Policy {
	switch {
	case subsumeSemantics:
		return Semantic
	case subsume:
		return Alike
	default:
		return None
	}
}
