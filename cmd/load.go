package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	loadRows     int
	loadDescribe bool
	loadOutput   string
)

type tableJSON struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

var loadCmd = &cobra.Command{
	Use:   "load <version> [flavor]",
	Short: "Load a Seshat table and print its head or a summary",
	Long: `Load a table from the bundled data. For Equinox the flavor is a worksheet
name (see 'seshat flavors Equinox'); for PNAS2017 it is Imputations or PCs.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, flavor := args[0], ""
		if len(args) == 2 {
			flavor = args[1]
		}
		t, err := newLoader().Load(version, flavor)
		if err != nil {
			return err
		}
		n := loadRows
		if !cmd.Flags().Changed("rows") {
			n = cfg.MaxPrintRows
		}

		var buf bytes.Buffer
		switch {
		case loadDescribe && wantJSON():
			b, err := json.MarshalIndent(analysis.Summarize(t, n), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal json: %w", err)
			}
			buf.Write(b)
			buf.WriteString("\n")
		case loadDescribe:
			buf.WriteString(analysis.Summarize(t, n).Markdown())
		case wantJSON():
			rows := t.Rows
			if n >= 0 && n < len(rows) {
				rows = rows[:n]
			}
			if err := printJSON(&buf, tableJSON{Name: t.Name, Columns: t.Columns, Rows: rows}); err != nil {
				return err
			}
		default:
			r, c := t.Shape()
			fmt.Fprintf(&buf, "%s: %d rows × %d columns\n\n", t.Name, r, c)
			buf.WriteString(analysis.Head(t, n))
		}
		return emit(cmd.OutOrStdout(), loadOutput, buf.Bytes())
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().IntVarP(&loadRows, "rows", "n", 10, "number of rows to print (default from config max_print_rows)")
	loadCmd.Flags().BoolVar(&loadDescribe, "describe", false, "print per-column statistics instead of rows")
	loadCmd.Flags().StringVarP(&loadOutput, "output", "o", "", "optional path to write the output")
}
