package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, BackendFile, cfg.Store.Backend)
	require.Equal(t, "127.0.0.1:7433", cfg.Serve.Addr)
	require.NoError(t, Validate(cfg))

	s, err := cfg.Settings()
	require.NoError(t, err)
	require.Equal(t, settings.Defaults(), s)
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, Validate(cfg))

	def := Defaults()
	require.Equal(t, def.Watch, cfg.Watch)
	require.Equal(t, def.Serve, cfg.Serve)
	require.Equal(t, def.Store, cfg.Store)
	require.Equal(t, def.UI, cfg.UI)
	require.Equal(t, def.Log, cfg.Log)

	// viper lower-cases the decoration keys; Merge still recognizes them.
	s, err := cfg.Settings()
	require.NoError(t, err)
	require.Equal(t, settings.Defaults(), s)
}

func TestValidate_ReportsEverySection(t *testing.T) {
	cfg := Defaults()
	cfg.Decoration = map[string]any{settings.KeyParentFontSizeMultiplier: 0}
	cfg.Theme.Mode = "sepia"
	cfg.Watch.Debounce = -time.Second
	cfg.Store.Backend = "postgres"
	cfg.Tracing.SampleRate = 2
	cfg.Log.Level = "loud"

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"decoration", "theme.mode", "watch.debounce", "store.backend", "tracing.sample_rate", "log.level"} {
		require.Contains(t, err.Error(), want)
	}
}

func TestValidateStore(t *testing.T) {
	require.NoError(t, ValidateStore(StoreConfig{}))
	require.NoError(t, ValidateStore(StoreConfig{Backend: BackendFile}))
	require.NoError(t, ValidateStore(StoreConfig{Backend: BackendSQLite, SQLitePath: "s.db"}))

	err := ValidateStore(StoreConfig{Backend: BackendSQLite})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sqlite_path")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{name: "zero value", cfg: tracing.Config{}},
		{name: "defaults", cfg: tracing.DefaultConfig()},
		{name: "bad exporter", cfg: tracing.Config{Exporter: "zipkin"}, wantErr: "tracing.exporter"},
		{name: "negative rate", cfg: tracing.Config{SampleRate: -0.1}, wantErr: "tracing.sample_rate"},
		{
			name:    "otlp without endpoint",
			cfg:     tracing.Config{Enabled: true, Exporter: tracing.ExporterOTLP},
			wantErr: "tracing.otlp_endpoint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestThemeConfig_FlattenedColors(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text": map[string]any{
				"accent": "#FF0000",
				"highlight": map[any]any{
					"bg": "#00FF00",
				},
			},
			"border.focus": "#0000FF",
		},
	}
	require.Equal(t, map[string]string{
		"text.accent":       "#FF0000",
		"text.highlight.bg": "#00FF00",
		"border.focus":      "#0000FF",
	}, theme.FlattenedColors())
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
