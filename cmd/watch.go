package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/render"
	"github.com/zjrosen/bulletdash/internal/watcher"
)

var watchClear bool

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a document whenever it or the config changes",
	Long: `Render a document and keep re-rendering it as it is edited elsewhere.
Edits to the config file apply new settings without restarting.

Examples:
  bulletdash watch notes.md
  bulletdash watch notes.md --clear=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cleanup, err := initLogging(logTarget{})
		if err != nil {
			return err
		}
		defer cleanup()

		if err := prepare(); err != nil {
			return err
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

		w, err := watcher.New(watcher.Config{
			DocumentPath: args[0],
			ConfigPath:   configPath(),
			DebounceDur:  cfg.Watch.Debounce,
		})
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		out := cmd.OutOrStdout()
		eng := engine.New(store,
			engine.WithTracer(provider.Tracer()),
			engine.WithRenderer(render.NewANSI(out)))

		return watchLoop(ctx, watchSession{
			path:    args[0],
			out:     out,
			engine:  eng,
			changes: changes,
			reload: func(ctx context.Context) error {
				return reloadSettings(ctx, store, repo)
			},
		})
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchClear, "clear", true, "clear the screen before each render")
	rootCmd.AddCommand(watchCmd)
}

type watchSession struct {
	path    string
	out     io.Writer
	engine  *engine.Engine
	changes <-chan watcher.Change
	reload  func(ctx context.Context) error
}

// watchLoop renders once, then again after every relevant change until ctx
// is done or the watcher stops.
func watchLoop(ctx context.Context, s watchSession) error {
	if err := s.renderFile(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-s.changes:
			if !ok {
				return nil
			}
			if change.Target == watcher.TargetConfig {
				if err := s.reload(ctx); err != nil {
					log.ErrorErr(log.CatSettings, "Reloaded settings with errors", err)
					_, _ = fmt.Fprintf(s.out, "settings: %v\n", err)
				}
				s.engine.Invalidate()
			}
			if err := s.renderFile(ctx); err != nil {
				// The file may be mid-rename; the next event renders it.
				log.ErrorErr(log.CatWatcher, "Render after change failed", err, "path", change.Path)
			}
		}
	}
}

func (s watchSession) renderFile(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	if watchClear {
		if f, ok := s.out.(*os.File); ok {
			termenv.NewOutput(f).ClearScreen()
		}
	}
	s.engine.Update(ctx, string(data), engine.DocChanged)
	return nil
}
