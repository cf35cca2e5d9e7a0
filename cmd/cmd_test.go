package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/bulletdash/internal/config"
	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/presentation"
	"github.com/zjrosen/bulletdash/internal/render"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/watcher"
)

const sampleDoc = "- Topic\n  - Sub\n    - Leaf\n- Ship it!\n"

// newTestConfig writes a default config into a temp dir and returns its path.
func newTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	return path
}

func writeDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

// execute runs the root command with fresh global state.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfg = config.Config{}
	cfgFile, debugFlag = "", false
	rolesFormat, decorateFormat, diffFormat = presentation.FormatTable, presentation.FormatJSON, presentation.FormatTable
	configFormat, configInitForce = presentation.FormatYAML, false
	renderHTML, diffExit = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoles_Table(t *testing.T) {
	out, err := execute(t, "", "roles", writeDoc(t, sampleDoc), "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Equal(t,
		"LINE  ROLE         TEXT\n"+
			"1     grandparent  Topic\n"+
			"2     parent       Sub\n"+
			"3     leaf         Leaf\n"+
			"4     leaf         Ship it!\n",
		out)
}

func TestRoles_JSONFromStdin(t *testing.T) {
	out, err := execute(t, "- a\n  - b\n", "roles", "--format", "json", "--config", newTestConfig(t))
	require.NoError(t, err)

	var roles []presentation.RoleDTO
	require.NoError(t, json.Unmarshal([]byte(out), &roles))
	require.Equal(t, []presentation.RoleDTO{
		{Line: 1, Role: "parent", Text: "a"},
		{Line: 2, Role: "leaf", Text: "b"},
	}, roles)
}

func TestRoles_MissingFile(t *testing.T) {
	_, err := execute(t, "", "roles", filepath.Join(t.TempDir(), "nope.md"), "--config", newTestConfig(t))
	require.ErrorContains(t, err, "no such file")
}

func TestDecorate_JSON(t *testing.T) {
	out, err := execute(t, "", "decorate", writeDoc(t, sampleDoc), "--config", newTestConfig(t))
	require.NoError(t, err)

	var spans []presentation.SpanDTO
	require.NoError(t, json.Unmarshal([]byte(out), &spans))
	require.Equal(t, "⇒", spans[0].Symbol)
	require.Equal(t, "grandparent", spans[0].Role)

	var symbols []string
	for _, s := range spans {
		if s.Kind == "replace" {
			symbols = append(symbols, s.Symbol)
		}
	}
	require.Equal(t, []string{"⇒", "→", "–", "–"}, symbols)
}

func TestDecorate_CSS(t *testing.T) {
	out, err := execute(t, "- In 2024\n", "decorate", "--format", "css", "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Contains(t, out, `.year[data-range="5-9"] { text-decoration: underline; }`)
	require.NotContains(t, out, ".bullet")
}

func TestDecorate_UsesStoredSettings(t *testing.T) {
	path := newTestConfig(t)
	_, err := execute(t, "", "config", "set", "enableAutoFormatting", "false", "--config", path)
	require.NoError(t, err)

	out, err := execute(t, "- In 2024\n", "decorate", "--format", "css", "--config", path)
	require.NoError(t, err)
	require.NotContains(t, out, ".year")
}

func TestRender_HTML(t *testing.T) {
	out, err := execute(t, sampleDoc, "render", "--html", "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Equal(t, 4, strings.Count(out, `<div class="bd-line">`))
	require.Contains(t, out, "bd-grandparent")
	require.Contains(t, out, "⇒")
}

func TestRender_ANSI(t *testing.T) {
	out, err := execute(t, sampleDoc, "render", "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Contains(t, out, "⇒")
	require.Contains(t, out, "Topic")
	require.NotContains(t, out, "- Topic")
	require.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestConfig_SetAndShow(t *testing.T) {
	path := newTestConfig(t)

	_, err := execute(t, "", "config", "set", "grandparentFontSizeMultiplier", "1.5", "--config", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "grandparentFontSizeMultiplier: 1.5")

	out, err := execute(t, "", "config", "show", "--format", "json", "--config", path)
	require.NoError(t, err)
	var blob map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &blob))
	require.InDelta(t, 1.5, blob[settings.KeyGrandparentFontSizeMultiplier], 0.0001)
}

func TestConfig_SetRejectsInvalid(t *testing.T) {
	path := newTestConfig(t)

	_, err := execute(t, "", "config", "set", "parentFontSizeMultiplier", "0", "--config", path)
	require.ErrorIs(t, err, settings.ErrInvalidValue)

	_, err = execute(t, "", "config", "set", "noSuchKey", "1", "--config", path)
	require.ErrorContains(t, err, "unknown setting")
}

func TestConfig_Reset(t *testing.T) {
	path := newTestConfig(t)
	_, err := execute(t, "", "config", "set", "boldParentText", "false", "--config", path)
	require.NoError(t, err)
	_, err = execute(t, "", "config", "reset", "--config", path)
	require.NoError(t, err)

	out, err := execute(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "boldParentText: true")
}

func TestConfig_InitAndPath(t *testing.T) {
	path := newTestConfig(t)

	out, err := execute(t, "", "config", "path", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path+"\n", out)

	_, err = execute(t, "", "config", "init", "--config", path)
	require.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("decoration: {}\n"), 0600))
	_, err = execute(t, "", "config", "init", "--force", "--config", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestDiff_Table(t *testing.T) {
	oldPath := writeDoc(t, "- a\n- b\n")
	newPath := writeDoc(t, "- a\n  - child\n- b\n")

	out, err := execute(t, "", "diff", oldPath, newPath, "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Contains(t, out, "leaf → parent")
	require.Contains(t, out, "added")
	require.NotContains(t, out, "- b")
}

func TestDiff_StdinOld(t *testing.T) {
	newPath := writeDoc(t, "- a\n")
	out, err := execute(t, "- a\n", "diff", "-", newPath, "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Equal(t, "no role changes\n", out)
}

func TestConventions(t *testing.T) {
	out, err := execute(t, "", "conventions", "--config", newTestConfig(t))
	require.NoError(t, err)
	require.Contains(t, out, "grandparent")
	require.Contains(t, out, "⇒")
}

func TestInvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  debounce: -1s\n"), 0600))

	_, err := execute(t, sampleDoc, "render", "--config", path)
	require.ErrorContains(t, err, "invalid configuration")
}

func TestWatchLoop_RerendersOnChange(t *testing.T) {
	path := writeDoc(t, "- a\n")
	store := settings.NewStore(settings.Defaults())
	var out bytes.Buffer
	eng := engine.New(store, engine.WithRenderer(render.NewHTML(&out)))

	changes := make(chan watcher.Change, 2)
	reloaded := 0
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(context.Background(), watchSession{
			path:    path,
			out:     &out,
			engine:  eng,
			changes: changes,
			reload: func(context.Context) error {
				reloaded++
				return nil
			},
		})
	}()

	require.Eventually(t, func() bool { return eng.Last() != nil }, time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("- a\n  - b\n"), 0600))
	changes <- watcher.Change{Path: path, Target: watcher.TargetDocument}
	changes <- watcher.Change{Path: "config.yaml", Target: watcher.TargetConfig}
	close(changes)

	require.NoError(t, <-done)
	require.Equal(t, 1, reloaded)
	require.Equal(t, "- a\n  - b\n", eng.Last().Text)
	// Initial render, document change, then a forced pass for the config.
	require.Equal(t, 3, strings.Count(out.String(), "bd-leaf"))
	require.Equal(t, 2, strings.Count(out.String(), "bd-parent"))
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	path := writeDoc(t, "- a\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watchLoop(ctx, watchSession{
		path:    path,
		out:     &bytes.Buffer{},
		engine:  engine.New(engine.StaticSettings(settings.Defaults())),
		changes: make(chan watcher.Change),
		reload:  func(context.Context) error { return nil },
	})
	require.NoError(t, err)
}
