// Package config provides configuration types and defaults for bulletdash.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/tracing"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for bulletdash.
type Config struct {
	// Decoration is the persisted settings blob, merged over the built-in
	// defaults. Keys are case-insensitive.
	Decoration map[string]any `mapstructure:"decoration"`
	Theme      ThemeConfig    `mapstructure:"theme"`
	Watch      WatchConfig    `mapstructure:"watch"`
	Serve      ServeConfig    `mapstructure:"serve"`
	Store      StoreConfig    `mapstructure:"store"`
	Tracing    tracing.Config `mapstructure:"tracing"`
	Log        LogConfig      `mapstructure:"log"`
	UI         UIConfig       `mapstructure:"ui"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual tokens, nested or in dot notation:
	//   colors:
	//     text:
	//       accent: "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors with dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// WatchConfig controls file watching for the preview and watch command.
type WatchConfig struct {
	// Debounce coalesces bursts of writes (editors often write twice).
	Debounce time.Duration `mapstructure:"debounce"`
}

// ServeConfig configures the HTTP decoration service.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// StoreConfig selects where decoration settings are persisted.
type StoreConfig struct {
	// Backend is "file" (the decoration section of this config file) or
	// "sqlite".
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UIConfig holds preview options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ShowHelp      bool   `mapstructure:"show_help"`
}

// DefaultConfigDir returns ~/.config/bulletdash, or "" without a home.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bulletdash")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Decoration: settings.Defaults().Blob(),
		Watch:      WatchConfig{Debounce: 100 * time.Millisecond},
		Serve:      ServeConfig{Addr: "127.0.0.1:7433"},
		Store:      StoreConfig{Backend: BackendFile},
		Tracing:    tracing.DefaultConfig(),
		Log:        LogConfig{Level: "debug", File: "debug.log"},
		UI:         UIConfig{MarkdownStyle: "dark", ShowHelp: true},
	}
}

// Settings merges the decoration section over the built-in defaults.
func (c Config) Settings() (settings.Settings, error) {
	return settings.Merge(settings.Defaults(), c.Decoration)
}

// Validate checks every section and reports all problems together.
func Validate(c Config) error {
	return errors.Join(
		ValidateDecoration(c.Decoration),
		ValidateTheme(c.Theme),
		ValidateWatch(c.Watch),
		ValidateStore(c.Store),
		ValidateTracing(c.Tracing),
		ValidateLog(c.Log),
	)
}

// ValidateDecoration rejects values settings ingestion would reject.
func ValidateDecoration(blob map[string]any) error {
	if _, err := settings.Merge(settings.Defaults(), blob); err != nil {
		return fmt.Errorf("decoration: %w", err)
	}
	return nil
}

// ValidateTheme checks the mode. Presets and tokens are checked when the
// theme is applied.
func ValidateTheme(t ThemeConfig) error {
	switch t.Mode {
	case "", "light", "dark":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", t.Mode)
	}
}

// ValidateWatch checks the debounce interval.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateStore checks the backend selection.
func ValidateStore(s StoreConfig) error {
	switch s.Backend {
	case "", BackendFile:
		return nil
	case BackendSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required when backend is %q", BackendSQLite)
		}
		return nil
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendFile, BackendSQLite, s.Backend)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Empty values use defaults.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ValidateLog checks the level name.
func ValidateLog(l LogConfig) error {
	if l.Level == "" {
		return nil
	}
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# bulletdash configuration

# Decoration settings. Any key left out uses its default.
decoration:
  leftIndent: 0.65              # em before every bullet glyph
  enDashRightIndent: -0.37      # em after the leaf glyph (–) and the note glyph (∗)
  arrowRightIndent: -0.67       # em after the parent glyph (→)
  doubleArrowRightIndent: -0.72 # em after the grandparent glyph (⇒)
  boldParentText: true
  boldGrandparentText: true
  enableAutoFormatting: true    # definitions, quotes, parentheticals, years, notes
  parentFontSizeMultiplier: 1.0
  grandparentFontSizeMultiplier: 1.0
  leafTextColor: ""             # empty inherits
  parentTextColor: ""
  grandparentTextColor: ""      # empty uses the theme accent
  exclamationTextColor: "#773757"

# Terminal theme for the preview and render commands
theme:
  # preset: catppuccin-mocha   # default, catppuccin-mocha, catppuccin-latte, dracula, nord, high-contrast
  # mode: dark                 # light, dark, or empty to detect
  # colors:
  #   text.accent: "#54A0FF"
  #   text.highlight.bg: "#5C4B00"

watch:
  debounce: 100ms

serve:
  addr: 127.0.0.1:7433

# Where "config set" and PUT /api/settings persist decoration settings
store:
  backend: file                # file (this file) or sqlite
  # sqlite_path: ~/.config/bulletdash/settings.db

ui:
  markdown_style: dark
  show_help: true

log:
  level: debug                 # used with --debug
  file: debug.log

# Tracing: one span per recomputation pass
# tracing:
#   enabled: true
#   exporter: file             # none, file, stdout, otlp
#   file_path: ~/.config/bulletdash/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
