package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/config"
	"github.com/zjrosen/bulletdash/internal/infrastructure/sqlite"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/tracing"
	"github.com/zjrosen/bulletdash/internal/ui/styles"
)

// logTarget says where logs go when no debug log was requested.
type logTarget struct {
	tui   bool      // route bubbletea's own logging into the debug log
	w     io.Writer // nil disables logging
	level log.Level
}

// initLogging opens the debug log when requested, otherwise routes lines at
// or above target.level to target.w.
func initLogging(target logTarget) (func(), error) {
	if os.Getenv("BULLETDASH_DEBUG") == "" && !debugFlag {
		if target.w == nil {
			log.SetEnabled(false)
			return func() {}, nil
		}
		log.InitWriter(target.w, target.level)
		return func() {}, nil
	}

	path := cfg.Log.File
	if path == "" {
		path = config.Defaults().Log.File
	}

	var (
		cleanup func()
		err     error
	)
	if target.tui {
		cleanup, err = log.InitWithTeaLog(path, "bulletdash")
	} else {
		cleanup, err = log.Init(path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}

	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			cleanup()
			return nil, err
		}
		log.SetMinLevel(level)
	}
	return cleanup, nil
}

// prepare validates the loaded config and applies the theme.
func prepare() error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	})
	if err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

// openStore opens the settings store on the configured backend.
func openStore(ctx context.Context) (*settings.Store, settings.Repository, func(), error) {
	var (
		repo    settings.Repository
		closeFn = func() {}
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := sqlite.NewDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening settings database: %w", err)
		}
		repo = db.SettingsRepository()
		closeFn = func() { _ = db.Close() }
	default:
		repo = config.NewFileRepository(configPath())
	}

	store, err := settings.Open(ctx, repo)
	if store == nil {
		closeFn()
		return nil, nil, nil, err
	}
	if err != nil {
		log.Warn(log.CatSettings, "Using defaults for rejected settings", "error", err)
	}
	return store, repo, func() {
		store.Close()
		closeFn()
	}, nil
}

// staticSettings resolves the settings once for one-shot commands.
func staticSettings(ctx context.Context) (settings.Settings, error) {
	store, _, closeStore, err := openStore(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	defer closeStore()
	return store.Snapshot(), nil
}

// reloadSettings re-reads the persisted blob after an external edit. Keys
// removed from the file fall back to their defaults.
func reloadSettings(ctx context.Context, store *settings.Store, repo settings.Repository) error {
	blob, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading settings: %w", err)
	}
	next, err := settings.Merge(settings.Defaults(), blob)
	store.Replace(next)
	return err
}

func newTracing() (*tracing.Provider, error) {
	tc := cfg.Tracing
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	p, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	return p, nil
}

func shutdownTracing(p *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
	}
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: no such file", args[0])
		}
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
