package api

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf16Offsets returns a function mapping byte offsets of text to UTF-16
// code-unit offsets, as used by browser editors. Offsets inside a rune map
// to the start of that rune.
func utf16Offsets(text string) func(int) int {
	table := make([]int, len(text)+1)
	units := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < size; j++ {
			table[i+j] = units
		}
		units += utf16.RuneLen(r)
		i += size
	}
	table[len(text)] = units

	return func(i int) int {
		switch {
		case i < 0:
			return 0
		case i > len(text):
			return units
		}
		return table[i]
	}
}
