// Package preview is the live preview host: an editor on the left and the
// decorated rendering on the right, recomputed on every change.
package preview

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/keys"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/pubsub"
	"github.com/zjrosen/bulletdash/internal/render"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/ui/styles"
	"github.com/zjrosen/bulletdash/internal/watcher"
)

// focus is the pane receiving keys.
type focus int

const (
	focusEditor focus = iota
	focusPreview
)

// FileChangedMsg reports a watched file changed on disk.
type FileChangedMsg watcher.Change

// savedMsg reports the result of writing the document.
type savedMsg struct{ err error }

// Config wires the preview to its collaborators.
type Config struct {
	Path     string // document path; empty for a scratch buffer
	Text     string // initial contents
	Store    *settings.Store
	Engine   *engine.Engine
	Renderer *render.ANSI
	// Changes delivers watcher notifications; nil disables reloading.
	Changes <-chan watcher.Change
	// ReloadSettings re-reads persisted settings after the config file
	// changed. Nil ignores config changes.
	ReloadSettings func(ctx context.Context) error
	// Logs surfaces error lines in the footer; nil disables it.
	Logs     *log.LogListener
	ShowHelp bool
}

// Model is the preview state.
type Model struct {
	ctx      context.Context
	cfg      Config
	editor   textarea.Model
	view     viewport.Model
	help     help.Model
	keys     keys.KeyMap
	listener *pubsub.ContinuousListener[settings.Settings]

	focus    focus
	showHelp bool
	dirty    bool
	status   string
	statusOK bool
	width    int
	height   int
	cursor   [2]int // row, column
	pass     *engine.Pass
}

// New creates the preview and runs the first pass.
func New(ctx context.Context, cfg Config) Model {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetValue(cfg.Text)
	ta.Focus()

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:      ctx,
		cfg:      cfg,
		editor:   ta,
		view:     viewport.New(0, 0),
		help:     h,
		keys:     keys.DefaultKeyMap(),
		listener: pubsub.NewLatestListener[settings.Settings](ctx, cfg.Store),
		showHelp: cfg.ShowHelp,
	}
	m.cursor = m.cursorPos()
	m.recompute(engine.DocChanged)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.listener.Listen(), m.waitForChange(), m.listenLogs())
}

// Text returns the editor contents.
func (m Model) Text() string {
	return m.editor.Value()
}

// Pass returns the latest recomputation.
func (m Model) Pass() *engine.Pass {
	return m.pass
}

// Status returns the footer message.
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.recompute(engine.ChangeFlags{Viewport: true})
		return m, nil

	case pubsub.Event[settings.Settings]:
		m.engineInvalidate()
		m.recompute(engine.ChangeFlags{})
		return m, m.listener.Listen()

	case log.LogEvent:
		if text, ok := errorText(msg.Payload); ok {
			m.setStatus(text, false)
		}
		return m, m.listenLogs()

	case FileChangedMsg:
		m.handleFileChange(watcher.Change(msg))
		return m, m.waitForChange()

	case savedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("save failed: %v", msg.err), false)
		} else {
			m.dirty = false
			m.setStatus("saved "+m.cfg.Path, true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.SwitchFocus):
		if m.focus == focusEditor {
			m.focus = focusPreview
			m.editor.Blur()
		} else {
			m.focus = focusEditor
			m.editor.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.ToggleAutoFormat):
		next := !m.cfg.Store.Snapshot().EnableAutoFormatting
		if err := m.cfg.Store.Set(m.ctx, settings.KeyEnableAutoFormatting, next); err != nil {
			m.setStatus(fmt.Sprintf("saving settings: %v", err), false)
		} else {
			m.setStatus(fmt.Sprintf("auto-formatting %s", onOff(next)), true)
		}
		// The store publishes the snapshot; the listener triggers the pass.
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.view.ScrollUp(max(1, m.view.Height))
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.view.ScrollDown(max(1, m.view.Height))
		return m, nil
	}

	if m.focus == focusPreview {
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	var flags engine.ChangeFlags
	if m.editor.Value() != before {
		flags.Doc = true
		m.dirty = true
	}
	if pos := m.cursorPos(); pos != m.cursor {
		flags.Selection = true
		m.cursor = pos
	}
	if flags.Any() {
		m.recompute(flags)
	}
	return m, cmd
}

func (m *Model) handleFileChange(c watcher.Change) {
	switch c.Target {
	case watcher.TargetConfig:
		if m.cfg.ReloadSettings == nil {
			return
		}
		if err := m.cfg.ReloadSettings(m.ctx); err != nil {
			m.setStatus(fmt.Sprintf("config reload: %v", err), false)
			return
		}
		m.setStatus("settings reloaded", true)
	case watcher.TargetDocument:
		if m.dirty {
			m.setStatus("file changed on disk; ctrl+r discards edits and reloads", false)
			return
		}
		m.reload()
	}
}

func (m *Model) reload() {
	if m.cfg.Path == "" {
		return
	}
	data, err := os.ReadFile(m.cfg.Path)
	if err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", err), false)
		return
	}
	if string(data) == m.editor.Value() {
		return
	}
	m.editor.SetValue(string(data))
	m.dirty = false
	m.cursor = m.cursorPos()
	m.recompute(engine.DocChanged)
	m.setStatus("reloaded "+m.cfg.Path, true)
}

func (m Model) save() tea.Cmd {
	path, text := m.cfg.Path, m.editor.Value()
	if path == "" {
		return func() tea.Msg { return savedMsg{err: fmt.Errorf("no file path")} }
	}
	return func() tea.Msg {
		return savedMsg{err: os.WriteFile(path, []byte(text), 0o644)}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.cfg.Changes == nil {
		return nil
	}
	ch := m.cfg.Changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return FileChangedMsg(c)
	}
}

func (m *Model) engineInvalidate() {
	m.cfg.Engine.Invalidate()
	m.cfg.Renderer.Invalidate(m.ctx)
}

// recompute runs a pass and refreshes the rendered pane.
func (m *Model) recompute(flags engine.ChangeFlags) {
	m.pass = m.cfg.Engine.Update(m.ctx, m.editor.Value(), flags)
	rendered := m.cfg.Renderer.Render(m.ctx, m.pass.Text, m.pass.Spans)
	m.view.SetContent(m.clip(rendered))
	log.Debug(log.CatUI, "Preview refreshed", "pass", m.pass.ID)
}

// clip truncates rendered lines to the pane width without breaking escapes.
func (m Model) clip(rendered string) string {
	w := m.view.Width
	if w <= 0 {
		return rendered
	}
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, w, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) cursorPos() [2]int {
	return [2]int{m.editor.Line(), m.editor.LineInfo().ColumnOffset}
}

func (m *Model) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
}

// layout sizes both panes from the window and footer height.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	frameW, frameH := styles.PaneStyle.GetFrameSize()
	paneW := m.width/2 - frameW
	paneH := m.height - frameH - lipgloss.Height(m.footer())
	paneW, paneH = max(paneW, 1), max(paneH, 1)

	m.editor.SetWidth(paneW)
	m.editor.SetHeight(paneH)
	m.view.Width = paneW
	m.view.Height = paneH
	m.help.Width = m.width
}

func (m Model) footer() string {
	var parts []string
	if m.status != "" {
		style := styles.SuccessStyle
		if !m.statusOK {
			style = styles.ErrorStyle
		}
		parts = append(parts, style.Render(wordwrap.String(m.status, max(m.width, 20))))
	}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	} else {
		parts = append(parts, m.summary())
	}
	return strings.Join(parts, "\n")
}

// summary describes the current document in one line.
func (m Model) summary() string {
	if m.pass == nil {
		return ""
	}
	name := m.cfg.Path
	if name == "" {
		name = "scratch"
	}
	if m.dirty {
		name += " [+]"
	}
	return styles.TitleStyle.Render(name) + styles.MutedStyle.Render(fmt.Sprintf(
		"  %d bullets  %d decorations  auto-format %s  ctrl+g help",
		len(m.pass.Roles), len(m.pass.Spans), onOff(m.pass.Settings.EnableAutoFormatting)))
}

// View implements tea.Model.
func (m Model) View() string {
	editorPane, previewPane := styles.FocusedPane, styles.PaneStyle
	if m.focus == focusPreview {
		editorPane, previewPane = styles.PaneStyle, styles.FocusedPane
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		editorPane.Render(m.editor.View()),
		previewPane.Render(m.view.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.footer())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) listenLogs() tea.Cmd {
	if m.cfg.Logs == nil {
		return nil
	}
	return m.cfg.Logs.Listen()
}

// errorText extracts the message of an error log line.
func errorText(line string) (string, bool) {
	_, rest, ok := strings.Cut(line, "["+log.LevelError.String()+"] ")
	if !ok {
		return "", false
	}
	// Drop the category tag.
	if _, msg, ok := strings.Cut(rest, "] "); ok {
		rest = msg
	}
	return strings.TrimSpace(rest), true
}
