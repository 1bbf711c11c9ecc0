package parser

import (
	"strings"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) Read(path, _ string) (*analysis.Table, error) {
	return analysis.ReadCSV(path)
}
