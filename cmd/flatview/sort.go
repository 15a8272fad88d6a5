package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var sortLang string

func init() {
	cmd := newSortCmd()
	cmd.Flags().StringVar(&sortLang, "lang", "en", "Language for collation (BCP 47 tag)")
	rootCmd.AddCommand(cmd)
}

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort all children by label and print the outline",
		Long: `The sort command sorts the children of every node by their labels,
collated for the language given with --lang and ignoring case.

Example:
  flatview sort --lang de data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args)
		},
	}
}

func runSort(cmd *cobra.Command, args []string) error {
	lang, err := language.Parse(sortLang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", sortLang, err)
	}
	sess, err := openSession(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sess.sort(lang)
	sess.close()
	return sess.print(cmd.OutOrStdout(), 0, -1)
}
