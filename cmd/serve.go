package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/api"
	"github.com/zjrosen/bulletdash/internal/log"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve decorations over HTTP",
	Long: `Start the HTTP decoration service for editor integrations.

Endpoints:
  GET  /health
  POST /api/decorate   {"text": "..."} (?units=utf16 for UTF-16 offsets)
  POST /api/roles      {"text": "..."}
  GET  /api/settings
  PUT  /api/settings   partial settings blob (?reset=true to start from defaults)

Examples:
  bulletdash serve
  bulletdash serve --addr :8080
  curl -s localhost:7433/api/decorate -d '{"text":"- a\n  - b\n"}'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cleanup, err := initLogging(logTarget{w: cmd.ErrOrStderr(), level: log.LevelInfo})
		if err != nil {
			return err
		}
		defer cleanup()

		if err := prepare(); err != nil {
			return err
		}
		store, _, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		provider, err := newTracing()
		if err != nil {
			return err
		}
		defer shutdownTracing(provider)

		addr := cfg.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		server := api.NewServer(store, api.WithTracer(provider.Tracer()))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", addr)
		return server.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config serve.addr)")
	rootCmd.AddCommand(serveCmd)
}
