package decoration

import "strings"

// pipeSeparator splits a term from its definition.
const pipeSeparator = " | "

// run is a half-open byte range relative to the start of a remainder.
type run struct {
	start, end int
}

// tokens holds everything the auto-formatting rules match in one remainder.
type tokens struct {
	pipe   int // offset of the first pipeSeparator, or -1
	quotes []run
	parens []run
	years  []run
}

// lex scans a remainder once. Quotes and parentheses are leftmost,
// non-nested and non-empty: `"[^"]+"` and `\([^)]+\)`. A year is a word run
// ([A-Za-z0-9_]) of exactly four ASCII digits.
func lex(s string) tokens {
	t := tokens{pipe: -1}
	quoteOpen, parenOpen := -1, -1
	wordStart, wordDigits := -1, true

	endWord := func(i int) {
		if wordStart >= 0 && wordDigits && i-wordStart == 4 {
			t.years = append(t.years, run{wordStart, i})
		}
		wordStart, wordDigits = -1, true
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		if isWordByte(c) {
			if wordStart < 0 {
				wordStart = i
			}
			if c < '0' || c > '9' {
				wordDigits = false
			}
		} else {
			endWord(i)
		}

		switch c {
		case '"':
			switch {
			case quoteOpen < 0:
				quoteOpen = i
			case i > quoteOpen+1:
				t.quotes = append(t.quotes, run{quoteOpen, i + 1})
				quoteOpen = -1
			default:
				// "" cannot match; the second quote may open the next run.
				quoteOpen = i
			}
		case '(':
			if parenOpen < 0 {
				parenOpen = i
			}
		case ')':
			if parenOpen >= 0 {
				if i > parenOpen+1 {
					t.parens = append(t.parens, run{parenOpen, i + 1})
				}
				parenOpen = -1
			}
		case ' ':
			if t.pipe < 0 && strings.HasPrefix(s[i:], pipeSeparator) {
				t.pipe = i
			}
		}
	}
	endWord(len(s))
	return t
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
