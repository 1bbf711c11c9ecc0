package dataset

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ccColumns are the nine Core Capability variables of the PNAS2017 analysis,
// in matrix column order.
var ccColumns = []string{
	"PolPop",
	"PolTerr",
	"CapPop",
	"levels",
	"government",
	"infrastr",
	"writing",
	"texts",
	"money",
}

// CCColumns returns the Core Capability column names in matrix order.
func CCColumns() []string { return slices.Clone(ccColumns) }

// LoadCCMatrix loads the default loader's Core Capability matrix.
func LoadCCMatrix(scale bool) (*mat.Dense, []string, error) {
	return DefaultLoader().LoadCCMatrix(scale)
}

// LoadCCMatrix selects the nine CC columns from the PNAS2017 imputations and
// returns them as a rows×9 matrix. With scale set, every column is z-scored
// using the population standard deviation (ddof=0).
func (l *Loader) LoadCCMatrix(scale bool) (*mat.Dense, []string, error) {
	t, err := l.Load(PNAS2017, Imputations)
	if err != nil {
		return nil, nil, err
	}
	m, err := t.Matrix(ccColumns...)
	if err != nil {
		return nil, nil, &ResourceUnavailableError{Path: PNAS2017File, Err: fmt.Errorf("cc matrix: %w", err)}
	}
	if scale {
		Standardize(m)
	}
	return m, CCColumns(), nil
}

// Standardize z-scores each column of m in place: subtract the column mean and
// divide by the population standard deviation. Constant columns are centered
// but not divided.
func Standardize(m *mat.Dense) {
	r, c := m.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		mean, std := stat.PopMeanStdDev(col, nil)
		for i := range col {
			col[i] -= mean
			if std > 0 {
				col[i] /= std
			}
		}
		m.SetCol(j, col)
	}
}
