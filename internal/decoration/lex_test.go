package decoration

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		pipe   int
		quotes []run
		parens []run
		years  []run
	}{
		{name: "empty", in: "", pipe: -1},
		{name: "quote", in: `say "hi" now`, pipe: -1, quotes: []run{{4, 8}}},
		{name: "empty quote reopens", in: `say "hi" and ""x"`, pipe: -1, quotes: []run{{4, 8}, {14, 17}}},
		{name: "unclosed quote", in: `a "b`, pipe: -1},
		{name: "paren non-nested", in: "(a (b) c)", pipe: -1, parens: []run{{0, 6}}},
		{name: "empty paren", in: "() (x)", pipe: -1, parens: []run{{3, 6}}},
		{name: "unclosed paren", in: "(open", pipe: -1},
		{
			name:  "years",
			in:    "in 2023, 12345 and 1999a x_2020 2020",
			pipe:  -1,
			years: []run{{3, 7}, {32, 36}},
		},
		{name: "first pipe", in: "a | b | c", pipe: 1},
		{name: "pipe needs spaces", in: "a| b", pipe: -1},
		{name: "leading pipe", in: " | x", pipe: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex(tt.in)
			require.Equal(t, tt.pipe, got.pipe)
			require.Equal(t, tt.quotes, got.quotes)
			require.Equal(t, tt.parens, got.parens)
			require.Equal(t, tt.years, got.years)
		})
	}
}

var (
	quoteRE = regexp.MustCompile(`"[^"]+"`)
	parenRE = regexp.MustCompile(`\([^)]+\)`)
)

func regexRuns(re *regexp.Regexp, s string) []run {
	var out []run
	for _, m := range re.FindAllStringIndex(s, -1) {
		out = append(out, run{m[0], m[1]})
	}
	return out
}

// The tokenizer must agree with the plain regular expressions it replaces.
func TestLex_MatchesRegexpSemantics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOfN(rapid.SampledFrom([]rune(`ab "()| 19`)), 0, 40, -1).Draw(t, "s")
		got := lex(s)
		if want := regexRuns(quoteRE, s); !equalRuns(got.quotes, want) {
			t.Fatalf("quotes of %q: got %v want %v", s, got.quotes, want)
		}
		if want := regexRuns(parenRE, s); !equalRuns(got.parens, want) {
			t.Fatalf("parens of %q: got %v want %v", s, got.parens, want)
		}
	})
}

func equalRuns(a, b []run) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStyle_Declaration(t *testing.T) {
	require.Equal(t, "", Style{}.Declaration())
	require.Equal(t,
		"font-weight: bold; font-style: italic; text-decoration: underline; color: #fff; background-color: var(--text-highlight-bg); font-size: 1.2em;",
		Style{
			Bold:       true,
			Italic:     true,
			Underline:  true,
			Color:      ColorRef{Value: "#fff"},
			Background: ColorRef{Token: TokenHighlight},
			FontScale:  1.2,
		}.Declaration())
	require.Equal(t, "var(--text-accent)", ColorRef{Token: TokenAccent}.CSS())
}

func TestCategory_String(t *testing.T) {
	require.Equal(t, "note-label", CategoryNoteLabel.String())
	require.Equal(t, "unknown", Category(99).String())
	require.Equal(t, "replace", KindReplace.String())
	require.Equal(t, "mark", KindMark.String())
}
