package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "Save", binding: km.Save, expected: []string{"ctrl+s"}},
		{name: "Reload", binding: km.Reload, expected: []string{"ctrl+r"}},
		{name: "ToggleAutoFormat", binding: km.ToggleAutoFormat, expected: []string{"ctrl+t"}},
		{name: "SwitchFocus", binding: km.SwitchFocus, expected: []string{"tab"}},
		{name: "Help avoids ctrl+h (backspace)", binding: km.Help, expected: []string{"ctrl+g"}},
		{name: "Quit", binding: km.Quit, expected: []string{"ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

// Every action must be reachable from the full help, and no key may be
// bound twice.
func TestDefaultKeyMap_FullHelpCoversBindings(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	count := 0
	for _, col := range km.FullHelp() {
		for _, b := range col {
			count++
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
	require.Equal(t, 8, count)
	require.Len(t, km.ShortHelp(), 4)
}
