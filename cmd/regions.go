package cmd

import (
	"fmt"
	"strings"

	"github.com/MichaelHoltonPrice/pyseshat/internal/regions"
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions <version>",
	Short: "List world regions and their NGAs for a dataset version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		regs, err := regions.For(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if wantJSON() {
			return printJSON(out, regs)
		}
		for _, r := range regs {
			fmt.Fprintf(out, "- %s (%d): %s\n", r.Name, len(r.Sites), strings.Join(r.Sites, ", "))
		}
		return nil
	},
}

var sitesRegion bool

var sitesCmd = &cobra.Command{
	Use:   "sites <version>",
	Short: "List every NGA of a dataset version in sorted order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version := args[0]
		sites, err := regions.AllSites(version)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if wantJSON() && !sitesRegion {
			return printJSON(out, sites)
		}
		byRegion := make(map[string]string, len(sites))
		if sitesRegion {
			for _, s := range sites {
				r, err := regions.RegionOf(version, s)
				if err != nil {
					return err
				}
				byRegion[s] = r
			}
			if wantJSON() {
				return printJSON(out, byRegion)
			}
		}
		for _, s := range sites {
			if sitesRegion {
				fmt.Fprintf(out, "%s\t%s\n", s, byRegion[s])
				continue
			}
			fmt.Fprintln(out, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.Flags().BoolVar(&sitesRegion, "with-region", false, "print the region of each NGA")
}
