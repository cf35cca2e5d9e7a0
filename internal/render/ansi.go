package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/bulletdash/internal/cachemanager"
	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/ui/styles"
)

// styleKey is a style's CSS declaration, which identifies it uniquely.
type styleKey string

// ANSI renders decorated text for a terminal with lipgloss. Font scale has
// no terminal equivalent and is ignored; glyph margins likewise, so columns
// line up with the source.
type ANSI struct {
	styles *cachemanager.ReadThroughCache[styleKey, lipgloss.Style, decoration.Style]
	out    io.Writer
	theme  atomic.Uint64 // themeGeneration the cached styles were built under
}

// themeGeneration counts theme changes. Cached styles capture the theme's
// colors, so a renderer flushes them when it sees a new generation.
var themeGeneration atomic.Uint64

func init() {
	styles.RegisterStyleRebuilder(func() { themeGeneration.Add(1) })
}

// NewANSI creates a renderer. out receives passes handed to Apply and may be
// nil when only Render is used.
func NewANSI(out io.Writer) *ANSI {
	cache := cachemanager.NewInMemoryCacheManager[styleKey, lipgloss.Style]("render-styles", cachemanager.NoExpiration)
	r := &ANSI{
		styles: cachemanager.NewReadThroughCache[styleKey, lipgloss.Style, decoration.Style](cache, loadStyle),
		out:    out,
	}
	r.theme.Store(themeGeneration.Load())
	return r
}

var _ engine.Renderer = (*ANSI)(nil)

// Apply writes the rendered pass to the output writer.
func (r *ANSI) Apply(ctx context.Context, p *engine.Pass) error {
	if r.out == nil {
		return nil
	}
	if _, err := io.WriteString(r.out, r.Render(ctx, p.Text, p.Spans)+"\n"); err != nil {
		return fmt.Errorf("writing rendered pass: %w", err)
	}
	return nil
}

// Render returns text with glyphs substituted and marks styled.
func (r *ANSI) Render(ctx context.Context, text string, spans []decoration.Span) string {
	if gen := themeGeneration.Load(); r.theme.Swap(gen) != gen {
		r.styles.Flush(ctx)
	}
	var b strings.Builder
	lines(text, spans, func(number int, segs []segment) {
		if number > 1 {
			b.WriteByte('\n')
		}
		for _, seg := range segs {
			b.WriteString(r.segment(ctx, seg))
		}
	})
	return b.String()
}

// Invalidate drops cached styles; call it after the theme changes.
func (r *ANSI) Invalidate(ctx context.Context) {
	r.styles.Flush(ctx)
}

// CachedStyles reports how many distinct styles have been built.
func (r *ANSI) CachedStyles() int {
	return r.styles.Len()
}

// CacheStats reports style cache lookups since the last Invalidate.
func (r *ANSI) CacheStats() cachemanager.Stats {
	return r.styles.Stats()
}

func (r *ANSI) segment(ctx context.Context, seg segment) string {
	if seg.glyph != nil {
		return glyphStyle(seg.glyph).Render(seg.glyph.Symbol)
	}
	if seg.style.IsZero() || seg.text == "" {
		return seg.text
	}
	st, err := r.styles.Get(ctx, styleKey(seg.style.Declaration()), seg.style)
	if err != nil {
		log.ErrorErr(log.CatRender, "Building style failed", err)
		return seg.text
	}
	return st.Render(seg.text)
}

func glyphStyle(g *decoration.Glyph) lipgloss.Style {
	switch {
	case g.Note:
		return styles.MutedStyle
	case g.Accent:
		return lipgloss.NewStyle().Foreground(styles.AccentColor)
	default:
		return lipgloss.NewStyle()
	}
}

func loadStyle(_ context.Context, s decoration.Style) (lipgloss.Style, error) {
	st := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if c, ok := terminalColor(s.Color); ok {
		st = st.Foreground(c)
	}
	if c, ok := terminalColor(s.Background); ok {
		st = st.Background(c)
	}
	log.Debug(log.CatRender, "Built style", "decl", s.Declaration())
	return st, nil
}

// terminalColor resolves theme tokens and the color forms settings accept.
// Unknown names and var() references inherit.
func terminalColor(c decoration.ColorRef) (lipgloss.TerminalColor, bool) {
	switch c.Token {
	case decoration.TokenAccent:
		return styles.AccentColor, true
	case decoration.TokenHighlight:
		return styles.HighlightBgColor, true
	}
	v := strings.ToLower(strings.TrimSpace(c.Value))
	switch {
	case v == "":
		return nil, false
	case strings.HasPrefix(v, "#"):
		return lipgloss.Color(expandHex(v)), true
	case strings.HasPrefix(v, "rgb"):
		if hex, ok := rgbToHex(v); ok {
			return lipgloss.Color(hex), true
		}
	default:
		if hex, ok := namedColors[v]; ok {
			return lipgloss.Color(hex), true
		}
	}
	return nil, false
}

// expandHex turns #rgb(a) into #rrggbb and drops any alpha.
func expandHex(v string) string {
	h := v[1:]
	switch len(h) {
	case 3, 4:
		return "#" + strings.Repeat(h[0:1], 2) + strings.Repeat(h[1:2], 2) + strings.Repeat(h[2:3], 2)
	case 8:
		return "#" + h[:6]
	}
	return v
}

func rgbToHex(v string) (string, bool) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return "", false
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) < 3 {
		return "", false
	}
	var out strings.Builder
	out.WriteByte('#')
	for _, p := range parts[:3] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		fmt.Fprintf(&out, "%02x", n)
	}
	return out.String(), true
}

// namedColors covers the CSS basic keywords.
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"orange":  "#ffa500",
}
