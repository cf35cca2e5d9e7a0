// Package decoration turns bullet lines into rendering instructions: one
// glyph replacement per bullet and style marks over parts of its text.
package decoration

import (
	"strconv"
	"strings"

	"github.com/zjrosen/bulletdash/internal/structure"
)

// Kind distinguishes replacements from marks.
type Kind int

const (
	KindReplace Kind = iota // replace the range with a glyph widget
	KindMark                // style the range
)

func (k Kind) String() string {
	if k == KindReplace {
		return "replace"
	}
	return "mark"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category names the rule that produced a mark.
type Category int

const (
	CategoryBullet      Category = iota // the glyph replacement
	CategoryBase                        // role-driven bold/color/size
	CategoryExclamation                 // line ending in "!"
	CategoryNote                        // italic "Note:" line
	CategoryNoteLabel                   // the "Note:" token itself
	CategoryTerm                        // text before " | "
	CategoryDefinition                  // text after " | "
	CategoryQuote                       // "quoted" run
	CategoryParen                       // (parenthetical) run
	CategoryYear                        // four-digit year
)

var categoryNames = [...]string{
	CategoryBullet:      "bullet",
	CategoryBase:        "base",
	CategoryExclamation: "exclamation",
	CategoryNote:        "note",
	CategoryNoteLabel:   "note-label",
	CategoryTerm:        "term",
	CategoryDefinition:  "definition",
	CategoryQuote:       "quote",
	CategoryParen:       "paren",
	CategoryYear:        "year",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Token is a theme color resolved by the renderer.
type Token string

const (
	TokenAccent    Token = "text-accent"
	TokenHighlight Token = "text-highlight-bg"
)

// ColorRef is either a literal color or a theme token. The zero value means
// inherit.
type ColorRef struct {
	Value string `json:"value,omitempty"`
	Token Token  `json:"token,omitempty"`
}

// IsZero reports whether the reference inherits.
func (c ColorRef) IsZero() bool {
	return c.Value == "" && c.Token == ""
}

// CSS renders the reference as a CSS value.
func (c ColorRef) CSS() string {
	if c.Token != "" {
		return "var(--" + string(c.Token) + ")"
	}
	return c.Value
}

// Style is a set of text attributes applied by a mark.
type Style struct {
	Bold       bool     `json:"bold,omitempty"`
	Italic     bool     `json:"italic,omitempty"`
	Underline  bool     `json:"underline,omitempty"`
	Color      ColorRef `json:"color,omitzero"`
	Background ColorRef `json:"background,omitzero"`
	FontScale  float64  `json:"fontScale,omitempty"` // 0 means unscaled
}

// IsZero reports whether the style changes nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Declaration renders the style as a CSS declaration list.
func (s Style) Declaration() string {
	var parts []string
	if s.Bold {
		parts = append(parts, "font-weight: bold;")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic;")
	}
	if s.Underline {
		parts = append(parts, "text-decoration: underline;")
	}
	if !s.Color.IsZero() {
		parts = append(parts, "color: "+s.Color.CSS()+";")
	}
	if !s.Background.IsZero() {
		parts = append(parts, "background-color: "+s.Background.CSS()+";")
	}
	if s.FontScale != 0 {
		parts = append(parts, "font-size: "+strconv.FormatFloat(s.FontScale, 'f', -1, 64)+"em;")
	}
	return strings.Join(parts, " ")
}

// Glyph is the widget that replaces a bullet marker.
type Glyph struct {
	Symbol      string         `json:"symbol"`
	Role        structure.Role `json:"role"`
	Note        bool           `json:"note,omitempty"`
	LeftMargin  float64        `json:"leftMargin"`  // em
	RightMargin float64        `json:"rightMargin"` // em
	Accent      bool           `json:"accent,omitempty"`
}

// Span is one decoration over the byte range [Start, End) of the document.
// Replace spans carry a Glyph; mark spans carry a Style.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Line     int      `json:"line"`
	Kind     Kind     `json:"kind"`
	Category Category `json:"category"`
	Glyph    *Glyph   `json:"glyph,omitempty"`
	Style    *Style   `json:"style,omitempty"`
}

// Declaration returns the mark's CSS, or "" for replacements.
func (s Span) Declaration() string {
	if s.Style == nil {
		return ""
	}
	return s.Style.Declaration()
}
