package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default bulletdash theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextMuted:     "#696969",
		TokenTextAccent:    "#54A0FF",
		TokenHighlightBg:   "#5C4B00",
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",
		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",
	},
}

var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha (dark)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextMuted:     "#6C7086", // overlay0
		TokenTextAccent:    "#CBA6F7", // mauve
		TokenHighlightBg:   "#45475A", // surface1
		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#89B4FA", // blue
		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusError:   "#F38BA8", // red
	},
}

var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte (light)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#4C4F69", // text
		TokenTextMuted:     "#9CA0B0", // overlay0
		TokenTextAccent:    "#8839EF", // mauve
		TokenHighlightBg:   "#DF8E1D", // yellow
		TokenBorderDefault: "#9CA0B0", // overlay0
		TokenBorderFocus:   "#1E66F5", // blue
		TokenStatusSuccess: "#40A02B", // green
		TokenStatusError:   "#D20F39", // red
	},
}

var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2", // foreground
		TokenTextMuted:     "#6272A4", // comment
		TokenTextAccent:    "#BD93F9", // purple
		TokenHighlightBg:   "#44475A", // current line
		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#FF79C6", // pink
		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusError:   "#FF5555", // red
	},
}

var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // snow storm 3
		TokenTextMuted:     "#4C566A", // polar night 4
		TokenTextAccent:    "#88C0D0", // frost 2
		TokenHighlightBg:   "#434C5E", // polar night 3
		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#81A1C1", // frost 3
		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusError:   "#BF616A", // aurora red
	},
}

var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextMuted:     "#FFFFFF", // no muted colors in high contrast
		TokenTextAccent:    "#00FFFF",
		TokenHighlightBg:   "#0000FF",
		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",
		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",
	},
}
