package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/MichaelHoltonPrice/pyseshat/internal/pca"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	pcaNoScale    bool
	pcaComponents int
	pcaScores     string
)

type pcaJSON struct {
	Columns           []string    `json:"columns"`
	Rows              int         `json:"rows"`
	Scaled            bool        `json:"scaled"`
	SingularValues    []float64   `json:"singular_values"`
	VarianceExplained []float64   `json:"variance_explained"`
	Loadings          [][]float64 `json:"loadings"`
}

var pcaCmd = &cobra.Command{
	Use:   "pca",
	Short: "Principal component analysis of the PNAS2017 Core Capability matrix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cols, err := newLoader().LoadCCMatrix(!pcaNoScale)
		if err != nil {
			return err
		}
		res, err := pca.Decompose(m)
		if err != nil {
			return err
		}
		k := len(res.D)
		n := pcaComponents
		if n <= 0 || n > k {
			n = k
		}
		rows, _ := m.Dims()
		ve := res.VarianceExplained()
		out := cmd.OutOrStdout()

		if pcaScores != "" {
			body, err := scoresCSV(res.Components(n))
			if err != nil {
				return err
			}
			if err := emit(out, pcaScores, body); err != nil {
				return err
			}
		}

		if wantJSON() {
			loadings := make([][]float64, len(cols))
			for i := range cols {
				loadings[i] = mat.Row(nil, i, res.Q)[:n]
			}
			return printJSON(out, pcaJSON{
				Columns:           cols,
				Rows:              rows,
				Scaled:            !pcaNoScale,
				SingularValues:    res.D[:n],
				VarianceExplained: ve[:n],
				Loadings:          loadings,
			})
		}

		fmt.Fprintf(out, "[CC PCA] %d rows × %d columns (scaled: %t)\n\n", rows, len(cols), !pcaNoScale)
		fmt.Fprintln(out, "| PC | singular value | variance explained | cumulative |")
		fmt.Fprintln(out, "| --- | --- | --- | --- |")
		var cum float64
		for i := 0; i < n; i++ {
			cum += ve[i]
			fmt.Fprintf(out, "| PC%d | %.4f | %.4f | %.4f |\n", i+1, res.D[i], ve[i], cum)
		}
		fmt.Fprintln(out, "\n[LOADINGS]")
		fmt.Fprint(out, "| variable |")
		for i := 0; i < n; i++ {
			fmt.Fprintf(out, " PC%d |", i+1)
		}
		fmt.Fprint(out, "\n| --- |")
		for i := 0; i < n; i++ {
			fmt.Fprint(out, " --- |")
		}
		fmt.Fprintln(out)
		for r, name := range cols {
			fmt.Fprintf(out, "| %s |", name)
			for i := 0; i < n; i++ {
				fmt.Fprintf(out, " %.3f |", res.Q.At(r, i))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// scoresCSV renders projected rows as CSV with a PC1..PCn header.
func scoresCSV(scores *mat.Dense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	r, c := scores.Dims()
	header := make([]string, c)
	for j := range header {
		header[j] = "PC" + strconv.Itoa(j+1)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	rec := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec[j] = strconv.FormatFloat(scores.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func init() {
	rootCmd.AddCommand(pcaCmd)
	pcaCmd.Flags().BoolVar(&pcaNoScale, "no-scale", false, "do not z-score the CC columns before decomposition")
	pcaCmd.Flags().IntVarP(&pcaComponents, "components", "k", 0, "number of components to report (0 = all)")
	pcaCmd.Flags().StringVar(&pcaScores, "scores", "", "optional path to write the projected scores as CSV")
}
