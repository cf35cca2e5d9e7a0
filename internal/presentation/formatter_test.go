package presentation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/rolediff"
	"github.com/zjrosen/bulletdash/internal/settings"
)

const doc = "- Topic\n  - Sub\n    - Leaf\nplain\n- Alone\n"

func TestFromAssignment(t *testing.T) {
	roles, _ := engine.Decorate(doc, settings.Defaults())
	require.Equal(t, []RoleDTO{
		{Line: 1, Role: "grandparent", Text: "Topic"},
		{Line: 2, Role: "parent", Text: "Sub"},
		{Line: 3, Role: "leaf", Text: "Leaf"},
		{Line: 5, Role: "leaf", Text: "Alone"},
	}, FromAssignment(doc, roles))
}

func TestFromSpans(t *testing.T) {
	_, spans := engine.Decorate("- Hi!\n", settings.Defaults())
	dtos := FromSpans(spans)
	require.Len(t, dtos, 2)
	require.Equal(t, SpanDTO{Start: 0, End: 1, Line: 1, Kind: "replace", Category: "bullet", Symbol: "–", Role: "leaf"}, dtos[0])
	require.Equal(t, "mark", dtos[1].Kind)
	require.Equal(t, "exclamation", dtos[1].Category)
	require.Contains(t, dtos[1].CSS, "font-weight: bold;")
}

func TestFormatRoles_AlignsByDisplayWidth(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatRoles([]RoleDTO{
		{Line: 1, Role: "grandparent", Text: "世界"},
		{Line: 12, Role: "leaf", Text: "x"},
	})
	require.NoError(t, err)
	require.Equal(t,
		"LINE  ROLE         TEXT\n"+
			"1     grandparent  世界\n"+
			"12    leaf         x\n",
		buf.String())
}

func TestFormatRoles_TruncatesText(t *testing.T) {
	var buf bytes.Buffer
	long := bytes.Repeat([]byte("a"), 100)
	require.NoError(t, NewFormatter(&buf).FormatRoles([]RoleDTO{{Line: 1, Role: "leaf", Text: string(long)}}))
	require.Contains(t, buf.String(), "…")
	require.NotContains(t, buf.String(), string(long))
}

func TestFormatChanges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatChanges(nil))
	require.Equal(t, "no role changes\n", buf.String())

	buf.Reset()
	report := rolediff.Compare("- a\n", "- a\n  - b\n")
	require.NoError(t, NewFormatter(&buf).FormatChanges(FromReport(report)))
	require.Contains(t, buf.String(), "retagged  1    1    leaf → parent")
	require.Contains(t, buf.String(), "added     -    2    - → leaf")
}

func TestValue(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.Value(FormatJSON, []RoleDTO{{Line: 1, Role: "leaf", Text: "<x>"}}))
	require.Contains(t, buf.String(), `"text": "<x>"`)

	buf.Reset()
	require.NoError(t, f.Value(FormatYAML, []RoleDTO{{Line: 1, Role: "leaf", Text: "x"}}))
	require.Equal(t, "- line: 1\n  role: leaf\n  text: x\n", buf.String())

	require.Error(t, f.Value("xml", nil))
}

func TestFormatCSS_SkipsReplacements(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatCSS([]SpanDTO{
		{Start: 0, End: 1, Category: "bullet"},
		{Start: 2, End: 5, Category: "year", CSS: "text-decoration: underline;"},
	})
	require.NoError(t, err)
	require.Equal(t, ".year[data-range=\"2-5\"] { text-decoration: underline; }\n", buf.String())
}
