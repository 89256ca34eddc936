package semantic

import (
	"fmt"
	"strconv"
	"strings"
)

// TUI is one UMLS semantic type.
type TUI struct {
	Code  int
	Name  string
	Group Group
}

// ID renders the code as "T047".
func (t TUI) ID() string { return FormatTUI(t.Code) }

var (
	tuiByCode = make(map[int]TUI, len(tuiTable))
	tuiByName = make(map[string]TUI, len(tuiTable))
)

func init() {
	for _, t := range tuiTable {
		tuiByCode[t.Code] = t
		tuiByName[matchable(t.Name)] = t
	}
}

func matchable(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "")
}

// FormatTUI renders a numeric type code with its T prefix.
func FormatTUI(code int) string {
	return fmt.Sprintf("T%03d", code)
}

// ParseTUI reads "T047", "t47" or "47".
func ParseTUI(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == 'T' || s[0] == 't') {
		s = s[1:]
	}
	code, err := strconv.Atoi(s)
	if err != nil || code < 0 {
		return 0, false
	}
	return code, true
}

// LookupTUI finds a semantic type by name ("Disease or Syndrome") or code.
func LookupTUI(s string) (TUI, bool) {
	if t, ok := tuiByName[matchable(s)]; ok {
		return t, true
	}
	code, ok := ParseTUI(s)
	if !ok {
		return TUI{}, false
	}
	t, ok := tuiByCode[code]
	return t, ok
}

// TUIs returns the full table ordered by code.
func TUIs() []TUI {
	out := make([]TUI, len(tuiTable))
	copy(out, tuiTable)
	return out
}
