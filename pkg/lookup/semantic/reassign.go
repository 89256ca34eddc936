package semantic

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

// Reassignment overrides the default group of individual TUIs.
// The zero value reassigns nothing.
type Reassignment map[int]Group

// ParseReassignment reads "TUI:Group" pairs such as "T184:Disorder" or
// "Sign or Symptom:Disorder". Malformed pairs are logged and ignored.
func ParseReassignment(pairs []string, logger *zerolog.Logger) Reassignment {
	log := logging.Or(logger, "semantic")
	r := make(Reassignment)
	for _, pair := range pairs {
		i := strings.LastIndex(pair, ":")
		if i <= 0 || i == len(pair)-1 {
			log.Warn().Str("pair", pair).Msg("improper TUI:Group reassignment")
			continue
		}
		tui, ok := LookupTUI(pair[:i])
		if !ok {
			log.Warn().Str("pair", pair).Msg("unknown semantic type in reassignment")
			continue
		}
		group, ok := ParseGroup(pair[i+1:])
		if !ok {
			log.Warn().Str("pair", pair).Msg("unknown semantic group in reassignment")
			continue
		}
		r[tui.Code] = group
	}
	return r
}

// GroupOf returns the group of a TUI code string, applying the reassignment
// first. Unrecognised codes are Unknown.
func (r Reassignment) GroupOf(tui string) Group {
	t, ok := LookupTUI(tui)
	if !ok {
		return Unknown
	}
	if g, ok := r[t.Code]; ok {
		return g
	}
	return t.Group
}

// Groups maps every TUI to its group and returns the distinct groups best
// first. No TUIs means Unknown.
func (r Reassignment) Groups(tuis []string) []Group {
	if len(tuis) == 0 {
		return []Group{Unknown}
	}
	gs := make([]Group, 0, len(tuis))
	for _, t := range tuis {
		gs = append(gs, r.GroupOf(t))
	}
	return Sorted(gs)
}
