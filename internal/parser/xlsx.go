package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read loads the named worksheet, or the first one when sheet is empty.
func (xlsxReader) Read(path, sheet string) (*analysis.Table, error) {
	if sheet == "" {
		names, err := analysis.SheetNames(path)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("workbook %s has no worksheets", filepath.Base(path))
		}
		sheet = names[0]
	}
	return analysis.ReadXLSXSheet(path, sheet)
}
