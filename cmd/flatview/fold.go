package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newFoldCmd())
}

func newFoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fold <file> <row>...",
		Short: "Toggle folding of rows and print the outline",
		Long: `The fold command folds the nodes at the given rows, or unfolds them if
they are folded already. Rows are toggled one after the other, every row
number refers to the outline as left by the previous toggle.

Example:
  flatview fold page.html 3 1
  flatview fold --events data.json 2`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args)
		},
	}
}

func runFold(cmd *cobra.Command, args []string) error {
	rows := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		pos, err := parseRow(arg)
		if err != nil {
			return err
		}
		rows = append(rows, pos)
	}
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, pos := range rows {
		if err := sess.toggle(pos); err != nil {
			sess.close()
			return err
		}
	}
	sess.close()
	return sess.print(cmd.OutOrStdout(), 0, -1)
}
