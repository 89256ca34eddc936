package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/termlookup/pkg/lookup"
	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Sentences splits text at terminal punctuation followed by whitespace and at
// blank lines, then tokenizes each sentence.
func Sentences(text string) []lookup.Sentence {
	var out []lookup.Sentence
	emit := func(begin, end int) {
		seg := text[begin:end]
		trimmed := strings.TrimLeftFunc(seg, unicode.IsSpace)
		begin += len(seg) - len(trimmed)
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
		if trimmed == "" {
			return
		}
		end = begin + len(trimmed)
		out = append(out, lookup.Sentence{
			Span:   token.Span{Begin: begin, End: end},
			Tokens: Tokenize(trimmed, begin),
		})
	}

	begin := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		next := i + size
		switch {
		case (r == '.' || r == '!' || r == '?') && (next == len(text) || isSpaceAt(text, next)):
			emit(begin, next)
			begin = next
		case r == '\n' && strings.HasPrefix(strings.TrimLeft(text[next:], " \t\r"), "\n"):
			emit(begin, next)
			begin = next
		}
		i = next
	}
	emit(begin, len(text))
	return out
}

func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}

// Document splits a note into a lookup document.
func Document(id, text string) lookup.Document {
	return lookup.Document{ID: id, Text: text, Sentences: Sentences(text)}
}
