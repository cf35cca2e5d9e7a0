package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuilder_Bullets(t *testing.T) {
	text := NewBuilder().
		Bullet(0, "top").
		Bullet(1, "child", WithMarker('*')).
		Prose(1, "aside").
		Blank().
		Bullet(2, "tabbed", WithTabs()).
		String()
	require.Equal(t, "- top\n  * child\n  aside\n\n\t\t- tabbed", text)
}

func TestBuilder_LinesAndLen(t *testing.T) {
	b := NewBuilder().Bullet(0, "a").Bullet(1, "b", WithMarker('+'))
	require.Equal(t, 2, b.Len())
	require.Equal(t, []string{"- a", "  + b"}, b.Lines())
}

func TestOutline_MaxDepth(t *testing.T) {
	require.Equal(t, -1, Outline{}.MaxDepth())
	require.Equal(t, -1, Outline{{Bullet: false, Depth: 3}}.MaxDepth())
	require.Equal(t, 2, Outline{{Bullet: true, Depth: 2}, {Bullet: false, Depth: 5}, {Bullet: true}}.MaxDepth())
}

func TestOutlineGen_RespectsBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := OutlineGen(10, 3).Draw(t, "outline")
		if len(o) > 10 {
			t.Fatalf("too many lines: %d", len(o))
		}
		for _, l := range o {
			if l.Depth < 0 || l.Depth > 3 {
				t.Fatalf("depth %d out of range", l.Depth)
			}
		}
		if got := len(o.Builder().Lines()); got != len(o) {
			t.Fatalf("rendered %d lines, want %d", got, len(o))
		}
	})
}
