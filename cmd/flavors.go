package cmd

import (
	"fmt"

	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
	"github.com/spf13/cobra"
)

var flavorsCmd = &cobra.Command{
	Use:   "flavors [version]",
	Short: "List supported versions, or the flavors of one version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			if wantJSON() {
				return printJSON(out, dataset.Versions())
			}
			for _, v := range dataset.Versions() {
				fmt.Fprintf(out, "- %s\n", v)
			}
			return nil
		}
		flavors, err := dataset.Flavors(args[0])
		if err != nil {
			return err
		}
		if wantJSON() {
			return printJSON(out, flavors)
		}
		for _, f := range flavors {
			fmt.Fprintf(out, "- %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flavorsCmd)
}
