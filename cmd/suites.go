package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spjmurray/tco/internal/suite"
)

func newSuitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the built-in suite aliases",
		Long: `The suite flag only accepts a fixed set of aliases. This lists them
alongside the suite each one selects in the runner.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, alias := range suite.Aliases() {
				canonical, _ := alias.Canonical()
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", alias, canonical)
			}
		},
	}
}
