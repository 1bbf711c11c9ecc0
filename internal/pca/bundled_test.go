package pca_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
	"github.com/MichaelHoltonPrice/pyseshat/internal/pca"
)

// TestBundledFirstComponentShare is a regression fixture against the PNAS2017
// imputations: the first principal component of the standardized CC matrix
// explains about 77.2% of the variance.
func TestBundledFirstComponentShare(t *testing.T) {
	dir := os.Getenv(dataset.DataDirEnv)
	if dir == "" {
		dir = filepath.Join("..", "..", "data")
	}
	if _, err := os.Stat(filepath.Join(dir, dataset.PNAS2017File)); err != nil {
		t.Skipf("bundled dataset not available: %v", err)
	}

	m, _, err := dataset.NewLoader(dir).LoadCCMatrix(true)
	require.NoError(t, err)
	res, err := pca.Decompose(m)
	require.NoError(t, err)

	require.Len(t, res.D, 9)
	rows, k := res.Projection.Dims()
	assert.Equal(t, 8280, rows)
	assert.Equal(t, 9, k)
	assert.InDelta(t, 0.772, res.VarianceExplained()[0], 1e-3)
}
