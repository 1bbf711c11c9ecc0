package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
)

// Reader loads a tabular file into a Table.
type Reader interface {
	CanRead(filename string) bool
	// Read loads path. sheet selects a worksheet for workbook formats and is
	// ignored by flat formats.
	Read(path, sheet string) (*analysis.Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported table format")

// ReadFile selects a reader based on the file extension and loads the table.
func ReadFile(path, sheet string) (*analysis.Table, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, sheet)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
