// Package markdown renders the bullet conventions guide for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Guide documents the conventions the decorator recognizes.
const Guide = "# Bullet conventions\n\n" +
	"Write ordinary markdown lists with `-`, `*` or `+`. Every bullet is redrawn by how deep its subtree goes.\n\n" +
	"| glyph | role | meaning |\n" +
	"|---|---|---|\n" +
	"| ⇒ | grandparent | has children that have children, drawn in the accent color |\n" +
	"| → | parent | has children |\n" +
	"| – | leaf | no deeper bullet follows |\n" +
	"| ∗ | note | a line starting with `Note:` |\n\n" +
	"Top-level bullets are always bold and accented.\n\n" +
	"## Emphasis\n\n" +
	"- `- Ship it!`: a line ending in `!` is bold in the exclamation color and nothing else applies.\n" +
	"- `- Note: check twice`: italic, with the label in bold.\n" +
	"- `- term | definition`: the term is bold on a highlight and the definition italic.\n" +
	"- `\"quotes\"` and `(asides)` are italic; four-digit years such as 2024 are underlined.\n\n" +
	"Auto-formatting can be switched off with `bulletdash config set enableAutoFormatting false`; glyphs and role styling remain.\n"

// Renderer wraps glamour with bulletdash configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width. style is a glamour
// standard style name ("dark", "light", "notty"); empty detects.
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	opts = append(opts, glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderGuide renders Guide.
func (r *Renderer) RenderGuide() (string, error) {
	return r.Render(Guide)
}
