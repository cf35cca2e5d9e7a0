package presentation

import (
	"github.com/zjrosen/bulletdash/internal/bullet"
	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/rolediff"
	"github.com/zjrosen/bulletdash/internal/structure"
)

// RoleDTO is one classified bullet line.
type RoleDTO struct {
	Line int    `json:"line" yaml:"line"`
	Role string `json:"role" yaml:"role"`
	Text string `json:"text" yaml:"text"`
}

// SpanDTO is a decoration with its CSS declaration resolved.
type SpanDTO struct {
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Line     int    `json:"line" yaml:"line"`
	Kind     string `json:"kind" yaml:"kind"`
	Category string `json:"category" yaml:"category"`
	Symbol   string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
	CSS      string `json:"css,omitempty" yaml:"css,omitempty"`
}

// ChangeDTO is one role change between two versions of a document.
type ChangeDTO struct {
	Kind    string `json:"kind" yaml:"kind"`
	OldLine int    `json:"oldLine,omitempty" yaml:"oldLine,omitempty"`
	NewLine int    `json:"newLine,omitempty" yaml:"newLine,omitempty"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
	Text    string `json:"text" yaml:"text"`
}

// FromAssignment lists the bullet lines of text in document order.
func FromAssignment(text string, roles structure.Assignment) []RoleDTO {
	dtos := make([]RoleDTO, 0, len(roles))
	bullet.Lines(text, func(number, _ int, line string) {
		b, ok := bullet.Parse(line)
		if !ok {
			return
		}
		dtos = append(dtos, RoleDTO{Line: number, Role: roles.Role(number).String(), Text: b.Remainder})
	})
	return dtos
}

// FromSpans converts decorations for output.
func FromSpans(spans []decoration.Span) []SpanDTO {
	dtos := make([]SpanDTO, 0, len(spans))
	for _, s := range spans {
		dto := SpanDTO{
			Start:    s.Start,
			End:      s.End,
			Line:     s.Line,
			Kind:     s.Kind.String(),
			Category: s.Category.String(),
			CSS:      s.Declaration(),
		}
		if s.Glyph != nil {
			dto.Symbol = s.Glyph.Symbol
			dto.Role = s.Glyph.Role.String()
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// FromReport converts a role diff for output.
func FromReport(r rolediff.Report) []ChangeDTO {
	dtos := make([]ChangeDTO, 0, len(r.Changes))
	for _, c := range r.Changes {
		dto := ChangeDTO{
			Kind:    string(c.Kind),
			OldLine: c.OldLine,
			NewLine: c.NewLine,
			Text:    c.Text,
		}
		if c.From != nil {
			dto.From = c.From.String()
		}
		if c.To != nil {
			dto.To = c.To.String()
		}
		dtos = append(dtos, dto)
	}
	return dtos
}
