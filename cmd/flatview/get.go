package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <row>",
		Short: "Show the node at a row",
		Long: `The get command resolves a flat position of the outline to its node
and prints the node's properties. For JSON documents the path of the value
is printed as well.

Example:
  flatview get data.json 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args)
		},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	pos, err := parseRow(args[1])
	if err != nil {
		return err
	}
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sess.close()
	s, err := sess.describe(pos)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}

func parseRow(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 0 {
		return 0, fmt.Errorf("invalid row %q", arg)
	}
	return pos, nil
}
