package main

import (
	"github.com/spf13/cobra"
)

var moveInto bool

func init() {
	cmd := newMoveCmd()
	cmd.Flags().BoolVar(&moveInto, "into", false, "Append to the children of the target row")
	rootCmd.AddCommand(cmd)
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <file> <from-row> <to-row>",
		Short: "Move a node and print the outline",
		Long: `The move command moves the node at row <from-row>, together with its
subtree, in front of the node at row <to-row>. With --into the node becomes
the last child of the node at <to-row>. A node cannot be moved into its own
subtree.

Example:
  flatview move --events page.html 7 3
  flatview move --into data.json 2 5`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, args)
		},
	}
}

func runMove(cmd *cobra.Command, args []string) error {
	from, err := parseRow(args[1])
	if err != nil {
		return err
	}
	to, err := parseRow(args[2])
	if err != nil {
		return err
	}
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	err = sess.move(from, to, moveInto)
	sess.close()
	if err != nil {
		return err
	}
	return sess.print(cmd.OutOrStdout(), 0, -1)
}
