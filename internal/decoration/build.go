package decoration

import (
	"cmp"
	"slices"
	"strings"

	"github.com/zjrosen/bulletdash/internal/bullet"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/structure"
)

// lineKind is the single precedence decision made for each bullet line.
type lineKind int

const (
	kindOrdinary lineKind = iota
	kindExclamation
	kindNote
)

const noteLabel = "Note:"

func classifyLine(remainder string) lineKind {
	trimmed := strings.TrimSpace(remainder)
	switch {
	case strings.HasSuffix(trimmed, "!"):
		return kindExclamation
	case strings.HasPrefix(trimmed, noteLabel):
		return kindNote
	default:
		return kindOrdinary
	}
}

// Build computes the decorations for every bullet line of text. The result
// is ordered by Start. Lines absent from roles are treated as leaves.
func Build(text string, roles structure.Assignment, cfg settings.Settings) []Span {
	var spans []Span
	bullet.Lines(text, func(number, offset int, line string) {
		b, ok := bullet.Parse(line)
		if !ok {
			return
		}
		spans = append(spans, buildLine(number, offset, b, roles.Role(number), cfg)...)
	})
	log.Debug(log.CatDecorate, "built decorations", "spans", len(spans))
	return spans
}

// lineBuilder collects the spans of one line, translating remainder-relative
// ranges to document offsets.
type lineBuilder struct {
	number    int
	textStart int // document offset of the remainder
	spans     []Span
}

func (lb *lineBuilder) mark(start, end int, cat Category, style Style) {
	if end <= start || style.IsZero() {
		return
	}
	lb.spans = append(lb.spans, Span{
		Start:    lb.textStart + start,
		End:      lb.textStart + end,
		Line:     lb.number,
		Kind:     KindMark,
		Category: cat,
		Style:    &style,
	})
}

func (lb *lineBuilder) runs(runs []run, cat Category, style Style) {
	for _, r := range runs {
		lb.mark(r.start, r.end, cat, style)
	}
}

func buildLine(number, offset int, b bullet.Line, role structure.Role, cfg settings.Settings) []Span {
	kind := classifyLine(b.Remainder)
	topLevel := b.Indent == ""
	accent := kind != kindNote && (role == structure.Grandparent || topLevel)

	glyph := roleGlyph(role, accent, cfg)
	if kind == kindNote {
		glyph = noteGlyph(cfg)
	}

	lb := &lineBuilder{number: number, textStart: offset + b.TextStart()}
	lb.spans = append(lb.spans, Span{
		Start:    offset + b.MarkerPos(),
		End:      offset + b.MarkerPos() + 1,
		Line:     number,
		Kind:     KindReplace,
		Category: CategoryBullet,
		Glyph:    &glyph,
	})

	rem := b.Remainder
	end := len(rem)

	switch kind {
	case kindExclamation:
		style := Style{Bold: true}
		if v, ok := cfg.ExclamationTextColor.Value(); ok {
			style.Color = ColorRef{Value: v}
		}
		lb.mark(0, end, CategoryExclamation, style)

	case kindNote:
		if !cfg.EnableAutoFormatting {
			break
		}
		lb.mark(0, end, CategoryNote, Style{Italic: true})
		label := strings.Index(rem, noteLabel)
		lb.mark(label, label+len(noteLabel), CategoryNoteLabel, Style{Bold: true, Italic: true})
		lb.inline(lex(rem))

	default:
		lb.mark(0, end, CategoryBase, Style{
			Bold:      roleBold(role, topLevel, cfg),
			Color:     roleColor(role, accent, cfg),
			FontScale: roleScale(role, cfg),
		})
		if !cfg.EnableAutoFormatting {
			break
		}
		t := lex(rem)
		if t.pipe >= 0 {
			lb.mark(0, t.pipe, CategoryTerm, Style{Bold: true, Background: ColorRef{Token: TokenHighlight}})
			lb.mark(t.pipe+len(pipeSeparator), end, CategoryDefinition, Style{Italic: true})
			break
		}
		lb.inline(t)
	}

	slices.SortStableFunc(lb.spans, func(a, b Span) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return lb.spans
}

// inline applies the quote, parenthetical and year rules.
func (lb *lineBuilder) inline(t tokens) {
	lb.runs(t.quotes, CategoryQuote, Style{Italic: true})
	lb.runs(t.parens, CategoryParen, Style{Italic: true})
	lb.runs(t.years, CategoryYear, Style{Underline: true})
}
