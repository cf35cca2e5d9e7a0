package decoration

import (
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/structure"
)

// Glyph symbols.
const (
	SymbolEnDash      = "–"
	SymbolArrow       = "→"
	SymbolDoubleArrow = "⇒"
	SymbolNote        = "∗"
)

// symbolFor maps a role to its glyph and right margin.
func symbolFor(role structure.Role, cfg settings.Settings) (string, float64) {
	switch role {
	case structure.Grandparent:
		return SymbolDoubleArrow, cfg.DoubleArrowRightIndent
	case structure.Parent:
		return SymbolArrow, cfg.ArrowRightIndent
	default:
		return SymbolEnDash, cfg.EnDashRightIndent
	}
}

func roleGlyph(role structure.Role, accent bool, cfg settings.Settings) Glyph {
	symbol, right := symbolFor(role, cfg)
	return Glyph{
		Symbol:      symbol,
		Role:        role,
		LeftMargin:  cfg.LeftIndent,
		RightMargin: right,
		Accent:      accent,
	}
}

// noteGlyph is drawn as a leaf without accent.
func noteGlyph(cfg settings.Settings) Glyph {
	return Glyph{
		Symbol:      SymbolNote,
		Role:        structure.Leaf,
		Note:        true,
		LeftMargin:  cfg.LeftIndent,
		RightMargin: cfg.EnDashRightIndent,
	}
}

// roleColor picks the base text color. Accent lines use the grandparent
// override or the theme accent; others use their role's override if set.
func roleColor(role structure.Role, accent bool, cfg settings.Settings) ColorRef {
	if accent {
		if v, ok := cfg.GrandparentTextColor.Value(); ok {
			return ColorRef{Value: v}
		}
		return ColorRef{Token: TokenAccent}
	}
	var c settings.Color
	switch role {
	case structure.Parent:
		c = cfg.ParentTextColor
	case structure.Leaf:
		c = cfg.LeafTextColor
	}
	if v, ok := c.Value(); ok {
		return ColorRef{Value: v}
	}
	return ColorRef{}
}

// roleScale returns 0 for unscaled text. Multipliers are never 0 because
// settings ingestion rejects non-positive font sizes.
func roleScale(role structure.Role, cfg settings.Settings) float64 {
	switch {
	case role == structure.Grandparent && cfg.GrandparentFontSizeMultiplier != 1.0:
		return cfg.GrandparentFontSizeMultiplier
	case role == structure.Parent && cfg.ParentFontSizeMultiplier != 1.0:
		return cfg.ParentFontSizeMultiplier
	}
	return 0
}

func roleBold(role structure.Role, topLevel bool, cfg settings.Settings) bool {
	return topLevel ||
		(role == structure.Parent && cfg.BoldParentText) ||
		(role == structure.Grandparent && cfg.BoldGrandparentText)
}
