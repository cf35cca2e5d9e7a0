// Package bullet recognizes list-bullet lines.
//
// A bullet line is optional leading whitespace, one of '-', '*' or '+',
// then a single whitespace separator. Everything after the separator is the
// remainder, including any further whitespace.
package bullet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TabWidth is the column width a tab expands to when measuring indentation.
const TabWidth = 4

// Line is a matched bullet line. Offsets are byte offsets relative to the
// start of the line.
type Line struct {
	Indent    string // leading whitespace, verbatim
	Marker    byte   // '-', '*' or '+'
	Separator string // the single whitespace character after the marker
	Remainder string // text after the separator
}

// MarkerPos is the offset of the marker character.
func (l Line) MarkerPos() int {
	return len(l.Indent)
}

// TextStart is the offset where the remainder begins.
func (l Line) TextStart() int {
	return len(l.Indent) + 1 + len(l.Separator)
}

// Width returns the tab-expanded indentation width.
func (l Line) Width() int {
	return IndentWidth(l.Indent)
}

// Parse matches a single line (without its trailing newline).
func Parse(line string) (Line, bool) {
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !isSpace(r) {
			break
		}
		i += size
	}
	if i >= len(line) || !IsMarker(line[i]) {
		return Line{}, false
	}
	sepStart := i + 1
	if sepStart >= len(line) {
		return Line{}, false
	}
	r, size := utf8.DecodeRuneInString(line[sepStart:])
	if !isSpace(r) {
		return Line{}, false
	}
	return Line{
		Indent:    line[:i],
		Marker:    line[i],
		Separator: line[sepStart : sepStart+size],
		Remainder: line[sepStart+size:],
	}, true
}

// IsMarker reports whether c is a list marker.
func IsMarker(c byte) bool {
	return c == '-' || c == '*' || c == '+'
}

// IndentWidth measures leading whitespace. Tabs advance to the next multiple
// of TabWidth; every other whitespace rune counts one column.
func IndentWidth(indent string) int {
	w := 0
	for _, r := range indent {
		if r == '\t' {
			w += TabWidth - w%TabWidth
			continue
		}
		w++
	}
	return w
}

// Lines splits text on '\n' and calls fn for every line with its 1-based
// number and the byte offset of its first character in text.
func Lines(text string, fn func(number, offset int, line string)) {
	offset := 0
	number := 1
	for {
		idx := strings.IndexByte(text[offset:], '\n')
		if idx < 0 {
			fn(number, offset, text[offset:])
			return
		}
		fn(number, offset, text[offset:offset+idx])
		offset += idx + 1
		number++
	}
}

// isSpace follows the JavaScript \s class: U+FEFF counts, U+0085 does not.
// The line terminator is excluded so a bare "-" never borrows the newline as
// its separator.
func isSpace(r rune) bool {
	switch r {
	case '\n', '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}
