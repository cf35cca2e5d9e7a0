package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/presentation"
)

var decorateFormat string

var decorateCmd = &cobra.Command{
	Use:   "decorate [file]",
	Short: "Print the decorations computed for a document",
	Long: `Compute the glyph replacements and style marks for every bullet line using
the stored settings. Offsets are byte offsets into the input.

Examples:
  bulletdash decorate notes.md
  bulletdash decorate notes.md --format css
  cat notes.md | bulletdash decorate --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := initLogging(logTarget{})
		if err != nil {
			return err
		}
		defer cleanup()

		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		cfg, err := staticSettings(cmd.Context())
		if err != nil {
			return err
		}

		_, spans := engine.Decorate(text, cfg)
		dtos := presentation.FromSpans(spans)

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if decorateFormat == presentation.FormatCSS {
			return formatter.FormatCSS(dtos)
		}
		return formatter.Value(decorateFormat, dtos)
	},
}

func init() {
	decorateCmd.Flags().StringVarP(&decorateFormat, "format", "f", presentation.FormatJSON, "output format: json, yaml or css")
	rootCmd.AddCommand(decorateCmd)
}
