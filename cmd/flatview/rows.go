package main

import (
	"github.com/spf13/cobra"
)

var (
	rowsFrom  int
	rowsCount int
)

func init() {
	cmd := newRowsCmd()
	cmd.Flags().IntVar(&rowsFrom, "from", 0, "First row to print")
	cmd.Flags().IntVarP(&rowsCount, "count", "n", -1, "Number of rows to print (-1 = all)")
	rootCmd.AddCommand(cmd)
}

func newRowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <file>",
		Short: "Print the outline of a document",
		Long: `The rows command prints the visible rows of a document's outline,
starting at row --from. Nodes folded with --fold-depth hide their subtrees.

Example:
  flatview rows page.html
  flatview rows --fold-depth 2 --from 10 -n 20 data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRows(cmd, args)
		},
	}
}

func runRows(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sess.close()
	return sess.print(cmd.OutOrStdout(), rowsFrom, rowsCount)
}
