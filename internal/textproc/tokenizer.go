// Package textproc is the command-line stand-in for an upstream clinical
// tokenizer: it splits plain text into sentences and typed tokens.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/termlookup/pkg/lookup/token"
)

// Tokenize splits text into word, number, punctuation, symbol and newline
// tokens. Offsets are byte offsets into text plus base. Each whitespace-free
// run is broken with token.Split, the same rule dictionary terms are split by.
func Tokenize(text string, base int) []token.BaseToken {
	var (
		out   []token.BaseToken
		start = -1
	)
	flush := func(end int) {
		if start < 0 {
			return
		}
		offset := base + start
		for _, piece := range token.Split(text[start:end]) {
			out = append(out, token.BaseToken{
				Span: token.Span{Begin: offset, End: offset + len(piece)},
				Text: piece,
				Kind: pieceKind(piece),
			})
			offset += len(piece)
		}
		start = -1
	}

	for i, r := range text {
		if !unicode.IsSpace(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		if r == '\n' {
			out = append(out, token.BaseToken{Span: token.Span{Begin: base + i, End: base + i + 1}, Text: "\n", Kind: token.Newline})
		}
	}
	flush(len(text))
	return out
}

func pieceKind(p string) token.Kind {
	r, _ := utf8.DecodeRuneInString(p)
	switch {
	case strings.HasPrefix(p, "'") && len(p) > 1:
		return token.Contraction
	case utf8.RuneCountInString(p) == 1 && unicode.IsPunct(r):
		return token.Punctuation
	case utf8.RuneCountInString(p) == 1 && !unicode.IsLetter(r) && !unicode.IsDigit(r):
		return token.Symbol
	}
	for _, r := range p {
		if unicode.IsLetter(r) {
			return token.Word
		}
	}
	return token.Number
}
