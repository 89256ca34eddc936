// Package semantic maps UMLS semantic types (TUIs) to coarse semantic groups
// and decides which groups may subsume each other.
package semantic

import (
	"fmt"
	"sort"
	"strings"
)

// Group is a coarse semantic category. Values are the historic numeric type ids.
type Group int

const (
	Unknown           Group = 0
	Drug              Group = 1
	Disorder          Group = 2
	Finding           Group = 3
	Procedure         Group = 5
	Anatomy           Group = 6
	ClinicalAttribute Group = 7
	Device            Group = 8
	Lab               Group = 9
	Phenomenon        Group = 10
	Subject           Group = 1001
	Title             Group = 1002
	Event             Group = 1003
	Entity            Group = 1004
	Time              Group = 1005
	Modifier          Group = 1006
	LabModifier       Group = 1007
)

var groupNames = map[Group]string{
	Unknown:           "Unknown",
	Drug:              "Drug",
	Disorder:          "Disorder",
	Finding:           "Finding",
	Procedure:         "Procedure",
	Anatomy:           "Anatomy",
	ClinicalAttribute: "Attribute",
	Device:            "Device",
	Lab:               "Lab",
	Phenomenon:        "Phenomenon",
	Subject:           "Subject",
	Title:             "Title",
	Event:             "Event",
	Entity:            "Entity",
	Time:              "Time",
	Modifier:          "Modifier",
	LabModifier:       "LabModifier",
}

// older group names still found in configuration files
var legacyNames = map[string]Group{
	"Disease_Disorder":  Disorder,
	"Medications/Drugs": Drug,
	"Sign_symptom":      Finding,
	"Anatomical_site":   Anatomy,
}

func (g Group) String() string {
	if n, ok := groupNames[g]; ok {
		return n
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// MarshalText writes the short group name.
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ParseGroup maps a short or legacy group name to a Group. Matching on short
// names ignores case.
func ParseGroup(name string) (Group, bool) {
	name = strings.TrimSpace(name)
	if g, ok := legacyNames[name]; ok {
		return g, true
	}
	for g, n := range groupNames {
		if strings.EqualFold(n, name) {
			return g, true
		}
	}
	return Unknown, false
}

// Best picks the most specific group: the highest code wins and Unknown
// only when nothing else is present.
func Best(groups []Group) Group {
	best := Unknown
	for _, g := range groups {
		if g != Unknown && (best == Unknown || g > best) {
			best = g
		}
	}
	return best
}

// Sorted returns distinct groups in best-first order.
func Sorted(groups []Group) []Group {
	seen := make(map[Group]bool, len(groups))
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i] == Unknown || out[j] == Unknown {
			return out[j] == Unknown && out[i] != Unknown
		}
		return out[i] > out[j]
	})
	return out
}
