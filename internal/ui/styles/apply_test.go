package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, ApplyTheme(ThemeConfig{})) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextAccent], AccentColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenHighlightBg], HighlightBgColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "nord"}))
	require.Equal(t, "#88C0D0", AccentColor.Dark)
	require.Equal(t, "#88C0D0", AccentColor.Light)
}

func TestApplyTheme_OverrideBeatsPreset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "dracula",
		Colors: map[string]string{"text.accent": "#00FF00"},
	}))
	require.Equal(t, "#00FF00", AccentColor.Dark)
	require.Equal(t, DraculaPreset.Colors[TokenHighlightBg], HighlightBgColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Preset: "solarized"}), "unknown theme preset")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"issue.bug": "#fff"}}), "unknown color token")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"text.accent": "blue"}}), "invalid hex color")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Mode: "sepia"}), "unknown theme mode")
}

func TestApplyTheme_RunsRebuilders(t *testing.T) {
	resetTheme(t)
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	t.Cleanup(func() { styleRebuilders = styleRebuilders[:len(styleRebuilders)-1] })

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestPresets_CoverEveryToken(t *testing.T) {
	for name, p := range Presets {
		for _, tok := range AllTokens() {
			c, ok := p.Colors[tok]
			require.True(t, ok, "%s missing %s", name, tok)
			require.True(t, isValidHexColor(c), "%s has invalid %s", name, tok)
		}
	}
}
