package dictionary

import (
	"strings"

	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// TermTokens splits dictionary term text into tokens the way clinical text is
// tokenized: on whitespace, then with token.Split.
func TermTokens(text string) []string {
	text = token.Normalize(text)
	var out []string
	for _, word := range strings.Fields(text) {
		out = append(out, token.Split(word)...)
	}
	return out
}
