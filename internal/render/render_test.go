package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

const doc = "- top\n  - mid \"q\"\n    - leaf\nprose\n  - Note: aside"

func TestANSI_SubstitutesGlyphs(t *testing.T) {
	_, spans := engine.Decorate(doc, settings.Defaults())
	out := NewANSI(nil).Render(context.Background(), doc, spans)

	require.Equal(t, "⇒ top\n  → mid \"q\"\n    – leaf\nprose\n  ∗ Note: aside", ansi.Strip(out))
}

func TestANSI_StylesMarks(t *testing.T) {
	text := "- bold top"
	_, spans := engine.Decorate(text, settings.Defaults())
	out := NewANSI(nil).Render(context.Background(), text, spans)

	require.NotEqual(t, text, out)
	require.Contains(t, out, "\x1b[1")
}

func TestANSI_UndecoratedTextUnchanged(t *testing.T) {
	text := "no bullets here\n\tstill none"
	out := NewANSI(nil).Render(context.Background(), text, nil)
	require.Equal(t, text, out)
}

func TestANSI_CachesStylesByDeclaration(t *testing.T) {
	text := "- a\n- b\n- c"
	_, spans := engine.Decorate(text, settings.Defaults())
	r := NewANSI(nil)

	r.Render(context.Background(), text, spans)
	require.Equal(t, 1, r.CachedStyles(), "three identical base marks share one style")
	require.Equal(t, uint64(2), r.CacheStats().Hits)
	require.Equal(t, uint64(1), r.CacheStats().Loads)

	r.Invalidate(context.Background())
	require.Zero(t, r.CachedStyles())
	require.Zero(t, r.CacheStats().Hits)
}

func TestANSI_ApplyWritesPass(t *testing.T) {
	var buf bytes.Buffer
	r := NewANSI(&buf)
	e := engine.New(engine.StaticSettings(settings.Defaults()), engine.WithRenderer(r))
	e.Update(context.Background(), "- x", engine.DocChanged)
	require.Equal(t, "– x\n", ansi.Strip(buf.String()))
}

func TestSegments_MergeOverlappingMarks(t *testing.T) {
	text := "- Note: (x)"
	_, spans := engine.Decorate(text, settings.Defaults())
	segs := segments(text, 0, spans)

	var texts []string
	for _, s := range segs {
		texts = append(texts, s.text)
	}
	require.Equal(t, []string{"-", " ", "Note:", " ", "(x)"}, texts)
	require.NotNil(t, segs[0].glyph)
	require.True(t, segs[2].style.Bold && segs[2].style.Italic)
	require.True(t, segs[4].style.Italic)
	require.False(t, segs[4].style.Bold)
}

func TestTerminalColor(t *testing.T) {
	tests := []struct {
		in   decoration.ColorRef
		want string
		ok   bool
	}{
		{decoration.ColorRef{Value: "#773757"}, "#773757", true},
		{decoration.ColorRef{Value: "#abc"}, "#aabbcc", true},
		{decoration.ColorRef{Value: "#11223344"}, "#112233", true},
		{decoration.ColorRef{Value: "rgb(255, 0, 16)"}, "#ff0010", true},
		{decoration.ColorRef{Value: "Teal"}, "#008080", true},
		{decoration.ColorRef{Value: "rebeccapurple"}, "", false},
		{decoration.ColorRef{Value: "var(--text-muted)"}, "", false},
		{decoration.ColorRef{}, "", false},
	}
	for _, tt := range tests {
		c, ok := terminalColor(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		if ok {
			require.Equal(t, lipgloss.Color(tt.want), c)
		}
	}

	_, ok := terminalColor(decoration.ColorRef{Token: decoration.TokenAccent})
	require.True(t, ok)
}

func TestRenderHTML(t *testing.T) {
	text := "- a <b> | def\nplain & simple"
	_, spans := engine.Decorate(text, settings.Defaults())
	out := RenderHTML(text, spans)

	require.Equal(t,
		`<div class="bd-line"><span class="bd-bullet bd-leaf" style="margin-left: 0.65em; margin-right: -0.37em; color: var(--text-accent);">–</span> `+
			`<span style="font-weight: bold; color: var(--text-accent); background-color: var(--text-highlight-bg);">a &lt;b&gt;</span>`+
			`<span style="font-weight: bold; color: var(--text-accent);"> | </span>`+
			`<span style="font-weight: bold; font-style: italic; color: var(--text-accent);">def</span></div>`+"\n"+
			`<div class="bd-line">plain &amp; simple</div>`+"\n",
		out)
}

func TestANSI_ThemeChangeFlushesStyles(t *testing.T) {
	text := "- a"
	_, spans := engine.Decorate(text, settings.Defaults())
	r := NewANSI(nil)
	ctx := context.Background()

	r.Render(ctx, text, spans)
	require.Equal(t, uint64(1), r.CacheStats().Loads)

	require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{Preset: "nord"}))
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })

	r.Render(ctx, text, spans)
	require.Equal(t, uint64(1), r.CacheStats().Loads, "styles rebuilt under the new theme")
	require.Zero(t, r.CacheStats().Hits)
}

func TestRender_TrailingNewlineEndsLastLine(t *testing.T) {
	text := "- a\n  - b\n"
	_, spans := engine.Decorate(text, settings.Defaults())

	out := RenderHTML(text, spans)
	require.Equal(t, 2, strings.Count(out, `<div class="bd-line">`))

	require.Equal(t, "→ a\n  – b", ansi.Strip(NewANSI(nil).Render(context.Background(), text, spans)))

	var buf bytes.Buffer
	e := engine.New(engine.StaticSettings(settings.Defaults()), engine.WithRenderer(NewANSI(&buf)))
	e.Update(context.Background(), text, engine.DocChanged)
	require.Equal(t, "→ a\n  – b\n", ansi.Strip(buf.String()))
}

func TestRender_EmptyDocumentKeepsOneLine(t *testing.T) {
	require.Equal(t, `<div class="bd-line"></div>`+"\n", RenderHTML("", nil))
	require.Equal(t, "\n\n", NewANSI(nil).Render(context.Background(), "\n\n\n", nil))
}
