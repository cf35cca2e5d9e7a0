package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/render"
)

var renderHTML bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print a document with its decorations applied",
	Long: `Render a document with bullets replaced by their glyphs and text styled.
Terminal output uses ANSI styling; --html emits one div per line with
inline styles, for previews or snapshot tests.

Examples:
  bulletdash render notes.md
  bulletdash render notes.md --html > notes.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := initLogging(logTarget{})
		if err != nil {
			return err
		}
		defer cleanup()

		if err := prepare(); err != nil {
			return err
		}
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		settings, err := staticSettings(cmd.Context())
		if err != nil {
			return err
		}
		provider, err := newTracing()
		if err != nil {
			return err
		}
		defer shutdownTracing(provider)

		var renderer engine.Renderer = render.NewANSI(cmd.OutOrStdout())
		if renderHTML {
			renderer = render.NewHTML(cmd.OutOrStdout())
		}
		eng := engine.New(engine.StaticSettings(settings),
			engine.WithTracer(provider.Tracer()),
			engine.WithRenderer(renderer))
		eng.Update(cmd.Context(), text, engine.DocChanged)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "emit HTML instead of ANSI")
	rootCmd.AddCommand(renderCmd)
}
