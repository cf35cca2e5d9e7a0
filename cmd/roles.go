package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/bulletdash/internal/presentation"
	"github.com/zjrosen/bulletdash/internal/structure"
)

var rolesFormat string

var rolesCmd = &cobra.Command{
	Use:   "roles [file]",
	Short: "Classify every bullet line as leaf, parent or grandparent",
	Long: `Classify every bullet line of a markdown document by how deep its
subtree goes. Reads stdin when no file (or "-") is given.

Examples:
  # Aligned table
  bulletdash roles notes.md

  # JSON for scripting
  bulletdash roles notes.md --format json | jq '.[] | select(.role == "grandparent")'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		dtos := presentation.FromAssignment(text, structure.Analyze(text))

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if rolesFormat == presentation.FormatTable {
			return formatter.FormatRoles(dtos)
		}
		return formatter.Value(rolesFormat, dtos)
	},
}

func init() {
	rolesCmd.Flags().StringVarP(&rolesFormat, "format", "f", presentation.FormatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(rolesCmd)
}
