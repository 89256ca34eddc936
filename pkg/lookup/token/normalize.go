package token

import (
	"strings"

	"github.com/kljensen/snowball"
	"golang.org/x/text/unicode/norm"
)

// Normalize puts text in NFC form so composed and decomposed input compare equal.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Lower lower-cases normalized text.
func Lower(s string) string {
	return strings.ToLower(s)
}

// Stem returns the English snowball stem of an already lower-cased word.
// Words the stemmer rejects are returned unchanged.
func Stem(lower string) string {
	if lower == "" {
		return ""
	}
	stemmed, err := snowball.Stem(lower, "english", true)
	if err != nil || stemmed == "" {
		return lower
	}
	return stemmed
}
