package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/pubsub"
	"github.com/zjrosen/bulletdash/internal/render"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/watcher"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func newModel(t *testing.T, cfg Config) Model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if cfg.Store == nil {
		cfg.Store = settings.NewStore(settings.Defaults())
		t.Cleanup(cfg.Store.Close)
	}
	cfg.Engine = engine.New(cfg.Store)
	cfg.Renderer = render.NewANSI(nil)
	return New(ctx, cfg)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func plainPreview(m Model) string {
	return ansi.Strip(m.view.View())
}

func TestNew_RendersInitialText(t *testing.T) {
	m := newModel(t, Config{Text: "- a\n  - b"})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	out := plainPreview(m)
	require.Contains(t, out, "→ a")
	require.Contains(t, out, "– b")
	require.Len(t, m.Pass().Roles, 2)
}

func TestTyping_RecomputesWithDocFlag(t *testing.T) {
	m := newModel(t, Config{Text: "- a"})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	first := m.Pass()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range "  - b" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	require.Equal(t, "- a\n  - b", m.Text())
	require.NotSame(t, first, m.Pass())
	require.True(t, m.Pass().Flags.Doc)
	require.Contains(t, plainPreview(m), "→ a")
	require.True(t, m.dirty)
}

func TestCursorMove_SetsSelectionFlag(t *testing.T) {
	m := newModel(t, Config{Text: "- a\n- b"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})

	require.True(t, m.Pass().Flags.Selection)
	require.False(t, m.Pass().Flags.Doc)
}

func TestSettingsEvent_Recomputes(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	t.Cleanup(store.Close)
	m := newModel(t, Config{Text: `- say "hi"`, Store: store})
	require.Len(t, m.Pass().Spans, 3, "glyph, base, quote")

	require.NoError(t, store.Set(context.Background(), settings.KeyEnableAutoFormatting, false))
	m = update(t, m, pubsub.Event[settings.Settings]{Type: pubsub.SnapshotEvent, Payload: store.Snapshot()})

	require.False(t, m.Pass().Settings.EnableAutoFormatting)
	require.Len(t, m.Pass().Spans, 2)
}

func TestToggleAutoFormat_WritesStore(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	t.Cleanup(store.Close)
	m := newModel(t, Config{Text: "- a", Store: store})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.False(t, store.Snapshot().EnableAutoFormatting)
	require.Equal(t, "auto-formatting off", m.Status())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.True(t, store.Snapshot().EnableAutoFormatting)
}

func TestSave_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	m := newModel(t, Config{Path: path, Text: "- a"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m = update(t, next.(Model), cmd())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "- a!", string(data))
	require.False(t, m.dirty)
	require.Contains(t, m.Status(), "saved")
}

func TestSave_NoPath(t *testing.T) {
	m := newModel(t, Config{Text: "- a"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = update(t, m, cmd())
	require.Contains(t, m.Status(), "save failed")
}

func TestFileChanged_ReloadsCleanBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("- a"), 0o644))
	m := newModel(t, Config{Path: path, Text: "- a"})

	require.NoError(t, os.WriteFile(path, []byte("- a\n  - b"), 0o644))
	m = update(t, m, FileChangedMsg{Path: path, Target: watcher.TargetDocument})

	require.Equal(t, "- a\n  - b", m.Text())
	require.Len(t, m.Pass().Roles, 2)
}

func TestFileChanged_KeepsDirtyBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("- a"), 0o644))
	m := newModel(t, Config{Path: path, Text: "- a"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	require.NoError(t, os.WriteFile(path, []byte("- other"), 0o644))
	m = update(t, m, FileChangedMsg{Path: path, Target: watcher.TargetDocument})
	require.Equal(t, "- ax", m.Text())
	require.Contains(t, m.Status(), "changed on disk")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "- other", m.Text())
}

func TestFileChanged_ConfigReloads(t *testing.T) {
	calls := 0
	m := newModel(t, Config{Text: "- a", ReloadSettings: func(context.Context) error {
		calls++
		return nil
	}})
	m = update(t, m, FileChangedMsg{Target: watcher.TargetConfig})
	require.Equal(t, 1, calls)
	require.Equal(t, "settings reloaded", m.Status())

	m.cfg.ReloadSettings = func(context.Context) error { return errors.New("bad yaml") }
	m = update(t, m, FileChangedMsg{Target: watcher.TargetConfig})
	require.Contains(t, m.Status(), "bad yaml")
}

func TestWaitForChange_DeliversWatcherChanges(t *testing.T) {
	ch := make(chan watcher.Change, 1)
	m := newModel(t, Config{Text: "- a", Changes: ch})
	ch <- watcher.Change{Path: "x", Target: watcher.TargetConfig}

	msg := m.waitForChange()()
	require.Equal(t, FileChangedMsg{Path: "x", Target: watcher.TargetConfig}, msg)

	close(ch)
	require.Nil(t, m.waitForChange()())
}

func TestFocus_PreviewSwallowsTyping(t *testing.T) {
	m := newModel(t, Config{Text: "- a"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	require.Equal(t, "- a", m.Text())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	require.Equal(t, "- az", m.Text())
}

func TestView_ClipsToPaneWidth(t *testing.T) {
	m := newModel(t, Config{Text: "- " + strings.Repeat("word ", 40)})
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})

	for _, line := range strings.Split(m.view.View(), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), m.view.Width)
	}
	require.Contains(t, ansi.Strip(m.View()), "bullets")
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t, Config{Text: "- a"})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	require.NotContains(t, ansi.Strip(m.View()), "reload from disk")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Contains(t, ansi.Strip(m.View()), "reload from disk")
}

func TestLogEvent_SurfacesErrors(t *testing.T) {
	m := newModel(t, Config{Text: "- a"})

	m = update(t, m, log.LogEvent{Payload: "2026-01-02T10:00:00 [DEBUG] [engine] pass done\n"})
	require.Empty(t, m.Status())

	m = update(t, m, log.LogEvent{Payload: "2026-01-02T10:00:00 [ERROR] [render] Building style failed error=bad color\n"})
	require.Equal(t, "Building style failed error=bad color", m.Status())
}

func TestErrorText(t *testing.T) {
	got, ok := errorText("t [ERROR] [watcher] Watcher error error=boom")
	require.True(t, ok)
	require.Equal(t, "Watcher error error=boom", got)

	_, ok = errorText("t [WARN] [watcher] slow")
	require.False(t, ok)
}
