package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDotCmd())
}

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <file>",
		Short: "Print the tree in Graphviz DOT format",
		Long: `The dot command prints the structure of a document's tree in Graphviz
DOT format. Nodes are labelled with their flat positions and aggregate
counts, folded nodes are greyed out.

Example:
  flatview dot --fold-depth 1 page.html | dot -Tsvg > page.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(cmd, args)
		},
	}
}

func runDot(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sess.close()
	return sess.dot(cmd.OutOrStdout())
}
