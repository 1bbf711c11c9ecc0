package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis/analysistest"
	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
)

// fixtureDir writes a data directory holding a small data1.csv and an Equinox
// workbook with every expected worksheet.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	header := append([]string{"NGA", "PolID", "Time"}, dataset.CCColumns()...)
	rows := [][]string{header}
	for i := 0; i < 6; i++ {
		row := []string{"Latium", "ItRom" + strconv.Itoa(i), strconv.Itoa(-500 + 100*i)}
		for j := range dataset.CCColumns() {
			row = append(row, strconv.FormatFloat(float64((i+1)*(j+2)%7)+0.25*float64(i), 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	analysistest.WriteCSV(t, filepath.Join(dir, dataset.PNAS2017File), rows)

	var sheets []analysistest.Sheet
	for _, ws := range dataset.EquinoxWorksheets() {
		sheets = append(sheets, analysistest.Sheet{
			Name: ws,
			Rows: [][]string{{"NGA", "Value"}, {"Konya Plain", "1"}, {"Crete", "2"}},
		})
	}
	analysistest.WriteXLSX(t, filepath.Join(dir, dataset.EquinoxFile), sheets)
	return dir
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	l := dataset.NewLoader(fixtureDir(t))
	for _, v := range []string{"Bad Version", "", "pnas2017", "equinox"} {
		_, err := l.Load(v, "Imputations")
		require.ErrorIs(t, err, dataset.ErrInvalidArgument, "version %q", v)

		var iae *dataset.InvalidArgumentError
		require.True(t, errors.As(err, &iae))
		assert.Equal(t, "version", iae.Param)
		assert.Equal(t, v, iae.Value)
		assert.Equal(t, []string{"PNAS2017", "Equinox"}, iae.Allowed)
	}
}

func TestLoadMissingFlavor(t *testing.T) {
	l := dataset.NewLoader(fixtureDir(t))
	for _, v := range dataset.Versions() {
		_, err := l.Load(v, "")
		require.ErrorIs(t, err, dataset.ErrMissingArgument, v)
		assert.NotErrorIs(t, err, dataset.ErrInvalidArgument)

		var mae *dataset.MissingArgumentError
		require.True(t, errors.As(err, &mae))
		assert.Contains(t, mae.Condition, v)
	}
}

func TestLoadEquinoxWorksheets(t *testing.T) {
	l := dataset.NewLoader(fixtureDir(t))
	worksheets := dataset.EquinoxWorksheets()
	require.Len(t, worksheets, 13)
	for _, ws := range worksheets {
		tbl, err := l.Load(dataset.Equinox, ws)
		require.NoError(t, err, ws)
		rows, _ := tbl.Shape()
		assert.Greater(t, rows, 0, ws)
		assert.Equal(t, ws, tbl.Name)
	}

	_, err := l.Load(dataset.Equinox, "Bad Worksheet")
	assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
	_, err = l.Load(dataset.Equinox, "Imputations")
	assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
}

func TestLoadPNAS2017Flavors(t *testing.T) {
	l := dataset.NewLoader(fixtureDir(t))
	imp, err := l.Load(dataset.PNAS2017, dataset.Imputations)
	require.NoError(t, err)
	pcs, err := l.Load(dataset.PNAS2017, dataset.PCs)
	require.NoError(t, err)

	rows, _ := imp.Shape()
	assert.Equal(t, 6, rows)
	// Both flavors resolve to the same file.
	assert.Equal(t, imp.Rows, pcs.Rows)
	assert.Equal(t, "PNAS2017/PCs", pcs.Name)

	for _, f := range []string{"Bad Flavor", "Metadata", "imputations"} {
		_, err := l.Load(dataset.PNAS2017, f)
		assert.ErrorIs(t, err, dataset.ErrInvalidArgument, f)
	}
}

func TestLoadMissingResource(t *testing.T) {
	l := dataset.NewLoader(t.TempDir())

	_, err := l.Load(dataset.PNAS2017, dataset.PCs)
	require.ErrorIs(t, err, dataset.ErrResourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var rue *dataset.ResourceUnavailableError
	require.True(t, errors.As(err, &rue))
	assert.Equal(t, dataset.PNAS2017File, filepath.Base(rue.Path))

	_, err = l.Load(dataset.Equinox, "NGAs")
	assert.ErrorIs(t, err, dataset.ErrResourceUnavailable)
}

func TestLoadMalformedCSV(t *testing.T) {
	dir := t.TempDir()
	body := "NGA,PolPop\nLatium,6.7\nCrete,5.1,extra\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.PNAS2017File), []byte(body), 0o644))

	_, err := dataset.NewLoader(dir).Load(dataset.PNAS2017, dataset.Imputations)
	assert.ErrorIs(t, err, dataset.ErrResourceUnavailable)
	assert.ErrorIs(t, err, analysis.ErrTooManyFields)
}

func TestLoadWorksheetMissingFromWorkbook(t *testing.T) {
	dir := t.TempDir()
	analysistest.WriteXLSX(t, filepath.Join(dir, dataset.EquinoxFile), []analysistest.Sheet{
		{Name: "Metadata", Rows: [][]string{{"a"}, {"b"}}},
	})
	_, err := dataset.NewLoader(dir).Load(dataset.Equinox, "Polities")
	assert.ErrorIs(t, err, dataset.ErrResourceUnavailable)
}

func TestFlavors(t *testing.T) {
	f, err := dataset.Flavors(dataset.PNAS2017)
	require.NoError(t, err)
	assert.Equal(t, []string{"Imputations", "PCs"}, f)

	f, err = dataset.Flavors(dataset.Equinox)
	require.NoError(t, err)
	assert.Equal(t, dataset.EquinoxWorksheets(), f)

	// Returned slices are copies.
	f[0] = "mutated"
	assert.Equal(t, "Metadata", dataset.EquinoxWorksheets()[0])

	_, err = dataset.Flavors("Bad Version")
	assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
}

func TestDefaultLoaderUsesEnv(t *testing.T) {
	dir := fixtureDir(t)
	t.Setenv(dataset.DataDirEnv, dir)
	assert.Equal(t, dir, dataset.DefaultLoader().DataDir)

	tbl, err := dataset.Load(dataset.Equinox, "Variables")
	require.NoError(t, err)
	assert.Equal(t, []string{"NGA", "Value"}, tbl.Columns)
}

func TestErrorMessages(t *testing.T) {
	_, err := dataset.NewLoader("").Load("Bad Version", "")
	assert.EqualError(t, err, `unrecognized version "Bad Version" (allowed: PNAS2017, Equinox)`)

	_, err = dataset.NewLoader("").Load(dataset.Equinox, "")
	assert.EqualError(t, err, "flavor (worksheet) must be specified for the Equinox dataset")
}
