// Package presentation formats command output.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the commands.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
	FormatCSS   = "css"
)

// maxTextWidth caps the text column of tables.
const maxTextWidth = 60

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// YAML writes v as YAML.
func (f *Formatter) YAML(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// Value writes v in the named structured format.
func (f *Formatter) Value(format string, v any) error {
	switch format {
	case FormatJSON:
		return f.JSON(v)
	case FormatYAML:
		return f.YAML(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FormatRoles writes the bullet lines as an aligned table.
func (f *Formatter) FormatRoles(roles []RoleDTO) error {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{fmt.Sprint(r.Line), r.Role, r.Text})
	}
	return f.table([]string{"LINE", "ROLE", "TEXT"}, rows)
}

// FormatChanges writes role changes as an aligned table.
func (f *Formatter) FormatChanges(changes []ChangeDTO) error {
	if len(changes) == 0 {
		_, err := fmt.Fprintln(f.writer, "no role changes")
		return err
	}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Kind, lineNumber(c.OldLine), lineNumber(c.NewLine),
			dash(c.From) + " → " + dash(c.To), c.Text,
		})
	}
	return f.table([]string{"CHANGE", "OLD", "NEW", "ROLE", "TEXT"}, rows)
}

// FormatCSS writes one rule per mark, keyed by document range.
func (f *Formatter) FormatCSS(spans []SpanDTO) error {
	for _, s := range spans {
		if s.CSS == "" {
			continue
		}
		if _, err := fmt.Fprintf(f.writer, ".%s[data-range=\"%d-%d\"] { %s }\n",
			s.Category, s.Start, s.End, s.CSS); err != nil {
			return err
		}
	}
	return nil
}

// table pads every column to its widest cell by display width. The last
// column is truncated rather than padded.
func (f *Formatter) table(header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		row[len(row)-1] = runewidth.Truncate(row[len(row)-1], maxTextWidth, "…")
		for i, cell := range row[:len(row)-1] {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func lineNumber(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
