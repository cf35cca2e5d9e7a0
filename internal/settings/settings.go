// Package settings holds the decoration options as an immutable snapshot.
//
// Options arrive as an arbitrary key-value blob (the persisted form) and are
// merged over Defaults by Merge, which is the only place values are
// validated. Everything downstream receives a well-typed Settings value.
package settings

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Blob keys, matching the persisted option names.
const (
	KeyLeftIndent                    = "leftIndent"
	KeyEnDashRightIndent             = "enDashRightIndent"
	KeyArrowRightIndent              = "arrowRightIndent"
	KeyDoubleArrowRightIndent        = "doubleArrowRightIndent"
	KeyBoldParentText                = "boldParentText"
	KeyBoldGrandparentText           = "boldGrandparentText"
	KeyEnableAutoFormatting          = "enableAutoFormatting"
	KeyParentFontSizeMultiplier      = "parentFontSizeMultiplier"
	KeyGrandparentFontSizeMultiplier = "grandparentFontSizeMultiplier"
	KeyLeafTextColor                 = "leafTextColor"
	KeyParentTextColor               = "parentTextColor"
	KeyGrandparentTextColor          = "grandparentTextColor"
	KeyExclamationTextColor          = "exclamationTextColor"
)

// ErrInvalidValue is wrapped by every rejected blob entry.
var ErrInvalidValue = errors.New("invalid setting value")

// Settings is one immutable configuration snapshot. Pass it by value.
type Settings struct {
	LeftIndent             float64 // em, before every glyph
	EnDashRightIndent      float64 // em, after the leaf and note glyphs
	ArrowRightIndent       float64 // em, after the parent glyph
	DoubleArrowRightIndent float64 // em, after the grandparent glyph

	BoldParentText       bool
	BoldGrandparentText  bool
	EnableAutoFormatting bool

	ParentFontSizeMultiplier      float64
	GrandparentFontSizeMultiplier float64

	LeafTextColor        Color
	ParentTextColor      Color
	GrandparentTextColor Color // unset means the theme accent
	ExclamationTextColor Color
}

// Defaults returns the built-in option values.
func Defaults() Settings {
	return Settings{
		LeftIndent:                    0.65,
		EnDashRightIndent:             -0.37,
		ArrowRightIndent:              -0.67,
		DoubleArrowRightIndent:        -0.72,
		BoldParentText:                true,
		BoldGrandparentText:           true,
		EnableAutoFormatting:          true,
		ParentFontSizeMultiplier:      1.0,
		GrandparentFontSizeMultiplier: 1.0,
		ExclamationTextColor:          ColorOf("#773757"),
	}
}

// Keys lists every recognized blob key in a stable order.
func Keys() []string {
	return []string{
		KeyLeftIndent,
		KeyEnDashRightIndent,
		KeyArrowRightIndent,
		KeyDoubleArrowRightIndent,
		KeyBoldParentText,
		KeyBoldGrandparentText,
		KeyEnableAutoFormatting,
		KeyParentFontSizeMultiplier,
		KeyGrandparentFontSizeMultiplier,
		KeyLeafTextColor,
		KeyParentTextColor,
		KeyGrandparentTextColor,
		KeyExclamationTextColor,
	}
}

// field binds a blob key to its setter.
type field struct {
	apply func(s *Settings, v any) error
	get   func(s Settings) any
}

var fields = map[string]field{
	KeyLeftIndent: number(func(s *Settings) *float64 { return &s.LeftIndent }, false),
	KeyEnDashRightIndent: number(func(s *Settings) *float64 { return &s.EnDashRightIndent }, false),
	KeyArrowRightIndent: number(func(s *Settings) *float64 { return &s.ArrowRightIndent }, false),
	KeyDoubleArrowRightIndent: number(func(s *Settings) *float64 { return &s.DoubleArrowRightIndent }, false),
	// Font multipliers stay positive; decoration treats a zero scale as unscaled.
	KeyParentFontSizeMultiplier: number(func(s *Settings) *float64 { return &s.ParentFontSizeMultiplier }, true),
	KeyGrandparentFontSizeMultiplier: number(func(s *Settings) *float64 { return &s.GrandparentFontSizeMultiplier }, true),
	KeyBoldParentText: boolean(func(s *Settings) *bool { return &s.BoldParentText }),
	KeyBoldGrandparentText: boolean(func(s *Settings) *bool { return &s.BoldGrandparentText }),
	KeyEnableAutoFormatting: boolean(func(s *Settings) *bool { return &s.EnableAutoFormatting }),
	KeyLeafTextColor: color(func(s *Settings) *Color { return &s.LeafTextColor }),
	KeyParentTextColor: color(func(s *Settings) *Color { return &s.ParentTextColor }),
	KeyGrandparentTextColor: color(func(s *Settings) *Color { return &s.GrandparentTextColor }),
	KeyExclamationTextColor: color(func(s *Settings) *Color { return &s.ExclamationTextColor }),
}

func number(ptr func(*Settings) *float64, positive bool) field {
	return field{
		apply: func(s *Settings, v any) error {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return fmt.Errorf("%w: %v is not a number", ErrInvalidValue, v)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %v is not finite", ErrInvalidValue, v)
			}
			if positive && f <= 0 {
				return fmt.Errorf("%w: %v must be greater than zero", ErrInvalidValue, v)
			}
			*ptr(s) = f
			return nil
		},
		get: func(s Settings) any { return *ptr(&s) },
	}
}

func boolean(ptr func(*Settings) *bool) field {
	return field{
		apply: func(s *Settings, v any) error {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return fmt.Errorf("%w: %v is not a boolean", ErrInvalidValue, v)
			}
			*ptr(s) = b
			return nil
		},
		get: func(s Settings) any { return *ptr(&s) },
	}
}

func color(ptr func(*Settings) *Color) field {
	return field{
		apply: func(s *Settings, v any) error {
			if v == nil {
				*ptr(s) = NoColor()
				return nil
			}
			str, err := cast.ToStringE(v)
			if err != nil {
				return fmt.Errorf("%w: %v is not a color string", ErrInvalidValue, v)
			}
			c, err := ParseColor(str)
			if err != nil {
				return err
			}
			*ptr(s) = c
			return nil
		},
		get: func(s Settings) any { return ptr(&s).String() },
	}
}

// Merge applies blob over base and returns the result. Rejected entries keep
// the base value; their errors are joined and returned alongside the merged
// snapshot, which is always usable. Unknown keys are ignored.
func Merge(base Settings, blob map[string]any) (Settings, error) {
	out := base
	keys := make([]string, 0, len(blob))
	for k := range blob {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		f, ok := lookup(k)
		if !ok {
			continue
		}
		if err := f.apply(&out, blob[k]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	return out, errors.Join(errs...)
}

// Set applies a single key, as the settings command does.
func Set(base Settings, key string, value any) (Settings, error) {
	f, ok := lookup(key)
	if !ok {
		return base, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	out := base
	if err := f.apply(&out, value); err != nil {
		return base, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

// Blob returns the persisted form of s. Unset colors become "".
func (s Settings) Blob() map[string]any {
	blob := make(map[string]any, len(fields))
	for k, f := range fields {
		blob[k] = f.get(s)
	}
	return blob
}

// lookup matches keys case-insensitively; viper lower-cases map keys.
func lookup(key string) (field, bool) {
	if f, ok := fields[key]; ok {
		return f, true
	}
	for k, f := range fields {
		if strings.EqualFold(k, key) {
			return f, true
		}
	}
	return field{}, false
}
