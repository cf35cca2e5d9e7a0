package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/bulletdash/internal/config"
	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/render"
	"github.com/zjrosen/bulletdash/internal/ui/preview"
	"github.com/zjrosen/bulletdash/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".bulletdash/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bulletdash [file]",
	Short: "Live structural decoration for markdown bullet lists",
	Long: `bulletdash redraws markdown bullets by the depth of their subtree:
⇒ for grandparents, → for parents, – for leaves, ∗ for notes.

Run without a subcommand to open the live preview on a file (created on
first save). Edits, cursor moves and settings changes recompute the
decorations immediately; the file and the config are watched for changes.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runPreview,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .bulletdash/config.yaml, then ~/.config/bulletdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also BULLETDASH_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("serve.addr", defaults.Serve.Addr)
	viper.SetDefault("store.backend", defaults.Store.Backend)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.show_help", defaults.UI.ShowHelp)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("tracing.file_path", config.DefaultTracesFilePath())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .bulletdash/config.yaml (current directory)
		// 2. ~/.config/bulletdash/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(config.DefaultConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .bulletdash/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// configPath is the file settings are saved to and watched at.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	if cfgFile != "" {
		return cfgFile
	}
	return localConfigPath
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cleanup, err := initLogging(logTarget{tui: true, w: io.Discard, level: log.LevelError})
	if err != nil {
		return err
	}
	defer cleanup()

	if err := prepare(); err != nil {
		return err
	}

	var path, text string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(data)
		case errors.Is(err, os.ErrNotExist):
			// New file, written on first save.
		default:
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	store, repo, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, err := newTracing()
	if err != nil {
		return err
	}
	defer shutdownTracing(provider)

	var changes <-chan watcher.Change
	if path != "" {
		w, err := watcher.New(watcher.Config{
			DocumentPath: existingOrEmpty(path),
			ConfigPath:   configPath(),
			DebounceDur:  cfg.Watch.Debounce,
		})
		if err == nil {
			if changes, err = w.Start(); err != nil {
				log.ErrorErr(log.CatWatcher, "Watcher failed to start", err)
			}
			defer func() { _ = w.Stop() }()
		}
	}

	model := preview.New(ctx, preview.Config{
		Path:     path,
		Text:     text,
		Store:    store,
		Engine:   engine.New(store, engine.WithTracer(provider.Tracer())),
		Renderer: render.NewANSI(nil),
		Changes:  changes,
		ReloadSettings: func(ctx context.Context) error {
			return reloadSettings(ctx, store, repo)
		},
		Logs:     log.NewListener(ctx),
		ShowHelp: cfg.UI.ShowHelp,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// existingOrEmpty keeps the watch on a file that exists only once saved.
func existingOrEmpty(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
