package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-timeeffort/pkg/model"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List funding sources and departments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Funding sources:")
		for _, source := range model.FundingSources() {
			fmt.Fprintf(out, "  %-24s %s (%g-%g%%)\n", source.Key, source.Label, source.Min, source.Max)
		}
		fmt.Fprintln(out, "Departments:")
		for _, dept := range model.Departments() {
			fmt.Fprintf(out, "  %s\n", dept)
		}
		return nil
	},
}
