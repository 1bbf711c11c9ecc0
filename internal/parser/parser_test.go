package parser_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis/analysistest"
	"github.com/MichaelHoltonPrice/pyseshat/internal/parser"
)

func TestReadFileCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data1.csv")
	analysistest.WriteCSV(t, p, [][]string{{"NGA", "PolPop"}, {"Latium", "6.7"}})

	tbl, err := parser.ReadFile(p, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"NGA", "PolPop"}, tbl.Columns)
	assert.Len(t, tbl.Rows, 1)
}

func TestReadFileXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "book.XLSX")
	analysistest.WriteXLSX(t, p, []analysistest.Sheet{
		{Name: "First", Rows: [][]string{{"a"}, {"1"}}},
		{Name: "Second", Rows: [][]string{{"b"}, {"2"}, {"3"}}},
	})

	tbl, err := parser.ReadFile(p, "Second")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, tbl.Columns)
	assert.Len(t, tbl.Rows, 2)

	first, err := parser.ReadFile(p, "")
	require.NoError(t, err)
	assert.Equal(t, "First", first.Name)
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := parser.ReadFile(filepath.Join(t.TempDir(), "notes.docx"), "")
	assert.ErrorIs(t, err, parser.ErrUnsupported)
}
