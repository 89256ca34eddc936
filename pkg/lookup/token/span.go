package token

import "strconv"

// Span is a half-open character range [Begin, End) into a document's text.
type Span struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
}

// Valid reports whether the bounds are ordered and non-negative.
func (s Span) Valid() bool {
	return s.Begin >= 0 && s.Begin <= s.End
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Begin
}

// Contains reports whether o lies inside s. Equal spans contain each other.
func (s Span) Contains(o Span) bool {
	return s.Begin <= o.Begin && o.End <= s.End
}

// StrictlyContains reports whether o lies inside s and is not equal to it.
func (s Span) StrictlyContains(o Span) bool {
	return s.Contains(o) && s != o
}

// Less orders spans by begin ascending, then end descending, so the longest
// span at a start position sorts first.
func (s Span) Less(o Span) bool {
	if s.Begin != o.Begin {
		return s.Begin < o.Begin
	}
	return s.End > o.End
}

func (s Span) String() string {
	return strconv.Itoa(s.Begin) + "-" + strconv.Itoa(s.End)
}
