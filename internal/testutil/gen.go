package testutil

import (
	"pgregory.net/rapid"
)

// Line is one generated outline line.
type Line struct {
	Bullet bool
	Depth  int
}

// Outline is a generated document.
type Outline []Line

// OutlineGen draws documents of up to maxLines lines, mostly bullets, at
// depths 0 through maxDepth.
func OutlineGen(maxLines, maxDepth int) *rapid.Generator[Outline] {
	return rapid.Custom(func(t *rapid.T) Outline {
		return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) Line {
			return Line{
				Bullet: rapid.Float64Range(0, 1).Draw(t, "bulletness") < 0.8,
				Depth:  rapid.IntRange(0, maxDepth).Draw(t, "depth"),
			}
		}), 0, maxLines).Draw(t, "lines")
	})
}

// Builder renders the outline with "item" bullets and "prose" lines.
func (o Outline) Builder() *Builder {
	b := NewBuilder()
	for _, l := range o {
		if l.Bullet {
			b.Bullet(l.Depth, "item")
		} else {
			b.Prose(l.Depth, "prose")
		}
	}
	return b
}

// String renders the outline.
func (o Outline) String() string {
	return o.Builder().String()
}

// MaxDepth returns the deepest bullet depth, or -1 without bullets.
func (o Outline) MaxDepth() int {
	deepest := -1
	for _, l := range o {
		if l.Bullet {
			deepest = max(deepest, l.Depth)
		}
	}
	return deepest
}
