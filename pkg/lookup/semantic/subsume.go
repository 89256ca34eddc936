package semantic

// SubsumeTable lists, per containing group, the other groups whose contained
// spans it absorbs. A group always absorbs itself.
type SubsumeTable map[Group][]Group

// DefaultSubsumes is the clinical cross-group table.
func DefaultSubsumes() SubsumeTable {
	return SubsumeTable{
		Anatomy:   {Drug, Disorder, Finding, Procedure, Lab, Phenomenon, Entity},
		Drug:      {Lab, Phenomenon, Entity, Event},
		Disorder:  {Drug, Finding, Lab, Phenomenon, Entity, Event},
		Finding:   {Lab, Phenomenon, Entity, Event},
		Procedure: {Lab, Phenomenon, Event},
	}
}

// Subsumes reports whether a span of group outer may absorb one of group inner.
func (t SubsumeTable) Subsumes(outer, inner Group) bool {
	if outer == inner {
		return true
	}
	for _, g := range t[outer] {
		if g == inner {
			return true
		}
	}
	return false
}
