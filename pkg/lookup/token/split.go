package token

import (
	"strings"
	"unicode"
)

// Hyphenated prefixes and suffixes that stay attached to their word.
var (
	hyphenPrefixes = setOf(
		"e-", "a-", "u-", "x-", "agro-", "ante-", "anti-", "arch-", "be-", "bi-",
		"bio-", "co-", "counter-", "cross-", "cyber-", "de-", "eco-", "ex-",
		"extra-", "inter-", "intra-", "macro-", "mega-", "micro-", "mid-", "mini-",
		"multi-", "neo-", "non-", "over-", "pan-", "para-", "peri-", "post-",
		"pre-", "pro-", "pseudo-", "quasi-", "re-", "semi-", "sub-", "super-",
		"tri-", "ultra-", "un-", "uni-", "vice-", "electro-", "gasto-", "homo-",
		"hetero-", "ortho-", "phospho-",
	)
	hyphenSuffixes = setOf(
		"-esque", "-ette", "-fest", "-fold", "-gate", "-itis", "-less", "-most",
		"-o-torium", "-rama", "-wise",
	)
)

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words)*2)
	for _, w := range words {
		m[w] = true
		m[strings.ToUpper(w)] = true
	}
	return m
}

// Split breaks one whitespace-free word into tokens: letters and digits run
// together, other runes stand alone. Listed hyphen prefixes and suffixes stay
// attached, a final "'s" and a final ".5" style decimal become their own
// token. The pieces concatenate back to word.
func Split(word string) []string {
	return splitWord([]rune(word))
}

func splitWord(word []rune) []string {
	var (
		out []string
		sb  []rune
	)
	flush := func() {
		if len(sb) > 0 {
			out = append(out, string(sb))
			sb = sb[:0]
		}
	}
	for i, c := range word {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			sb = append(sb, c)
			continue
		}
		if c == '-' && (hyphenPrefixes[string(sb)+"-"] || isSuffix(word, i+1)) {
			sb = append(sb, c)
			continue
		}
		if (c == '\'' && isFinal(word, i+1, func(r rune) bool { return r == 's' })) ||
			(c == '.' && isFinal(word, i+1, unicode.IsDigit)) {
			flush()
			sb = append(sb, c)
			continue
		}
		flush()
		out = append(out, string(c))
	}
	flush()
	return out
}

func isSuffix(word []rune, start int) bool {
	if start >= len(word) {
		return false
	}
	end := start
	for end < len(word) && (unicode.IsLetter(word[end]) || unicode.IsDigit(word[end])) {
		end++
	}
	if end == start {
		return false
	}
	return hyphenSuffixes["-"+string(word[start:end])]
}

// isFinal reports whether word has exactly one rune after start-1 and it satisfies ok.
func isFinal(word []rune, start int, ok func(rune) bool) bool {
	return len(word) == start+1 && ok(word[start])
}
