package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/presentation"
	"github.com/zjrosen/bulletdash/internal/rolediff"
)

var (
	diffFormat string
	diffExit   bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Show which bullets changed role between two versions",
	Long: `Compare two versions of a document and list the bullets whose role
changed, plus bullets added or removed. Lines are aligned by content, so an
insertion does not report every later line as changed.

Examples:
  bulletdash diff notes.md.orig notes.md
  git show HEAD:notes.md | bulletdash diff - notes.md --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldText, err := readInput(cmd, args[:1])
		if err != nil {
			return err
		}
		newText, err := readInput(cmd, args[1:])
		if err != nil {
			return err
		}

		report := rolediff.Compare(oldText, newText)
		dtos := presentation.FromReport(report)

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if diffFormat == presentation.FormatTable {
			err = formatter.FormatChanges(dtos)
		} else {
			err = formatter.Value(diffFormat, dtos)
		}
		if err != nil {
			return err
		}
		if diffExit && !report.Empty() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d role changes\n", len(report.Changes))
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", presentation.FormatTable, "output format: table, json or yaml")
	diffCmd.Flags().BoolVar(&diffExit, "exit-code", false, "exit with status 1 when roles changed")
	rootCmd.AddCommand(diffCmd)
}
