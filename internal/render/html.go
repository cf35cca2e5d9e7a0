package render

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/engine"
)

// HTML renders each line as a div with inline-styled spans, the way an
// editor overlay paints decorations. Glyph margins are kept in em.
type HTML struct {
	out io.Writer
}

// NewHTML creates an HTML renderer writing passes to out.
func NewHTML(out io.Writer) *HTML {
	return &HTML{out: out}
}

var _ engine.Renderer = (*HTML)(nil)

// Apply writes the rendered pass.
func (h *HTML) Apply(_ context.Context, p *engine.Pass) error {
	if _, err := io.WriteString(h.out, RenderHTML(p.Text, p.Spans)); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}

// RenderHTML returns the decorated document as HTML.
func RenderHTML(text string, spans []decoration.Span) string {
	var b strings.Builder
	lines(text, spans, func(_ int, segs []segment) {
		b.WriteString(`<div class="bd-line">`)
		for _, seg := range segs {
			switch {
			case seg.glyph != nil:
				writeGlyph(&b, seg.glyph)
			case seg.style.IsZero():
				b.WriteString(html.EscapeString(seg.text))
			default:
				fmt.Fprintf(&b, `<span style="%s">%s</span>`,
					html.EscapeString(seg.style.Declaration()), html.EscapeString(seg.text))
			}
		}
		b.WriteString("</div>\n")
	})
	return b.String()
}

func writeGlyph(b *strings.Builder, g *decoration.Glyph) {
	class := "bd-bullet bd-" + g.Role.String()
	if g.Note {
		class = "bd-bullet bd-note"
	}
	style := "margin-left: " + em(g.LeftMargin) + "; margin-right: " + em(g.RightMargin) + ";"
	if g.Accent {
		style += " color: " + decoration.ColorRef{Token: decoration.TokenAccent}.CSS() + ";"
	}
	fmt.Fprintf(b, `<span class="%s" style="%s">%s</span>`, class, style, g.Symbol)
}

func em(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "em"
}
