// Package render paints decorations: ANSI for terminals and HTML for
// browsers. Both walk the same per-line segmentation, where every segment is
// either a glyph replacing a marker or a run of text under one merged style.
package render

import (
	"slices"

	"github.com/zjrosen/bulletdash/internal/bullet"
	"github.com/zjrosen/bulletdash/internal/decoration"
)

type segment struct {
	text  string
	glyph *decoration.Glyph
	style decoration.Style
}

// lines splits text and groups spans by the line they belong to, then calls
// fn with each line's segments. A final newline terminates the last line
// rather than opening an empty one.
func lines(text string, spans []decoration.Span, fn func(number int, segs []segment)) {
	byLine := make(map[int][]decoration.Span)
	for _, s := range spans {
		byLine[s.Line] = append(byLine[s.Line], s)
	}
	bullet.Lines(text, func(number, offset int, line string) {
		if offset > 0 && offset == len(text) {
			return
		}
		fn(number, segments(line, offset, byLine[number]))
	})
}

func segments(line string, offset int, spans []decoration.Span) []segment {
	if len(spans) == 0 {
		return []segment{{text: line}}
	}

	cuts := []int{0, len(line)}
	for _, s := range spans {
		cuts = append(cuts, clamp(s.Start-offset, len(line)), clamp(s.End-offset, len(line)))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	segs := make([]segment, 0, len(cuts))
	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		seg := segment{text: line[a:b]}
		for _, s := range spans {
			if s.Start-offset > a || s.End-offset < b {
				continue
			}
			switch s.Kind {
			case decoration.KindReplace:
				seg.glyph = s.Glyph
			case decoration.KindMark:
				seg.style = merge(seg.style, *s.Style)
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

// merge layers over on top of base. Attributes accumulate; a later color
// wins.
func merge(base, over decoration.Style) decoration.Style {
	base.Bold = base.Bold || over.Bold
	base.Italic = base.Italic || over.Italic
	base.Underline = base.Underline || over.Underline
	if !over.Color.IsZero() {
		base.Color = over.Color
	}
	if !over.Background.IsZero() {
		base.Background = over.Background
	}
	if over.FontScale > base.FontScale {
		base.FontScale = over.FontScale
	}
	return base
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
