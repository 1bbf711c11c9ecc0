package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
	"github.com/MichaelHoltonPrice/pyseshat/internal/parser"
	"github.com/spf13/cobra"
)

var (
	anaSheetName  string
	anaSampleRows int
	anaOutputPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Summarize any CSV/TSV/XLSX file (e.g. a newer Seshat export)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parser.ReadFile(args[0], anaSheetName)
		if err != nil {
			return err
		}
		rep := analysis.Summarize(t, anaSampleRows)
		var body []byte
		if wantJSON() {
			b, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal json: %w", err)
			}
			body = append(b, '\n')
		} else {
			body = []byte(rep.Markdown())
		}
		return emit(cmd.OutOrStdout(), anaOutputPath, body)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze (default first sheet)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write analysis (Markdown)")
}
