package settings

import (
	"fmt"
	"strings"
)

// Color is an optional color override. The zero value is unset, meaning the
// renderer's default applies.
type Color struct {
	value string
	set   bool
}

// NoColor returns an unset color.
func NoColor() Color {
	return Color{}
}

// ColorOf returns a set color. It does not validate; use ParseColor for
// untrusted input.
func ColorOf(v string) Color {
	return Color{value: v, set: true}
}

// Value returns the color and whether it is set.
func (c Color) Value() (string, bool) {
	return c.value, c.set
}

// IsSet reports whether the override is present.
func (c Color) IsSet() bool {
	return c.set
}

// String returns the value, or "" when unset.
func (c Color) String() string {
	return c.value
}

// ParseColor accepts "" (unset), hex (#rgb, #rgba, #rrggbb, #rrggbbaa), a
// named color, var(--token), or an rgb/rgba/hsl/hsla function.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoColor(), nil
	}
	if validColor(s) {
		return ColorOf(s), nil
	}
	return NoColor(), fmt.Errorf("%w: %q is not a color", ErrInvalidValue, s)
}

func validColor(s string) bool {
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return false
		}
		for i := 0; i < len(hex); i++ {
			if !isHex(hex[i]) {
				return false
			}
		}
		return true
	case strings.HasPrefix(s, "var(--") && strings.HasSuffix(s, ")"):
		return len(s) > len("var(--)")
	case hasFunc(s, "rgb"), hasFunc(s, "rgba"), hasFunc(s, "hsl"), hasFunc(s, "hsla"):
		return true
	default:
		for i := 0; i < len(s); i++ {
			c := s[i]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				return false
			}
		}
		return true
	}
}

func hasFunc(s, name string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, name+"(") && strings.HasSuffix(lower, ")") && len(s) > len(name)+2
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
