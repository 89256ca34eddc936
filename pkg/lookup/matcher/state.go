package matcher

import "github.com/cognicore/termlookup/pkg/lookup/token"

// state is the alignment of one dictionary entry against the token window.
type state struct {
	doc         int // next document token
	entry       int // next entry token
	skips       int
	consecutive int
	end         int // end offset of the last matched document token
}

func start(i int, anchor token.LookupToken) state {
	return state{doc: i + 1, entry: 1, end: anchor.End()}
}

// advance consumes a matched document token and entry token.
func (s state) advance(tok token.LookupToken) state {
	s.doc++
	s.entry++
	s.consecutive = 0
	s.end = tok.End()
	return s
}

// skip consumes a document token without moving the entry cursor.
func (s state) skip() state {
	s.doc++
	s.skips++
	s.consecutive++
	return s
}

func (s state) canSkip(b Budget) bool {
	return s.skips < b.TotalSkipMax && s.consecutive < b.ConsecutiveSkipMax
}
