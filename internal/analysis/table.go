package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Table is an in-memory tabular dataset with named columns. Every row is
// padded to len(Columns).
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

var (
	// ErrColumnNotFound is returned when a named column is absent from a Table.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTooManyFields is returned when a CSV record is wider than its header.
	ErrTooManyFields = errors.New("too many fields")
)

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Columns)
}

// ColumnIndex returns the 0-based index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the raw cell values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Float64s parses the named column as numbers. Blank cells and NA markers are
// rejected; callers that tolerate missing values should use Column instead.
func (t *Table) Float64s(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		x, ok := parseNumeric(v)
		if !ok {
			return nil, fmt.Errorf("column %q row %d: not numeric: %q", name, i+1, v)
		}
		out[i] = x
	}
	return out, nil
}

// Matrix selects the named columns, in the given order, into a dense
// rows×len(names) matrix.
func (t *Table) Matrix(names ...string) (*mat.Dense, error) {
	r := len(t.Rows)
	c := len(names)
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("matrix: empty selection (%d rows, %d columns)", r, c)
	}
	data := make([]float64, r*c)
	for j, name := range names {
		col, err := t.Float64s(name)
		if err != nil {
			return nil, err
		}
		for i, x := range col {
			data[i*c+j] = x
		}
	}
	return mat.NewDense(r, c, data), nil
}

// ReadCSV reads a delimited file into a Table. The first record is the header.
// Cell values are kept as written. Records shorter than the header are padded
// with blanks; a longer record is an error.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{Name: filepath.Base(path)}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &Table{Name: filepath.Base(path), Columns: cleanHeader(header)}
	ncol := len(t.Columns)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if len(rec) > ncol {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w: expected %d, saw %d", line, ErrTooManyFields, ncol, len(rec))
		}
		t.Rows = append(t.Rows, padRow(rec, ncol))
	}
	return t, nil
}

// cleanHeader strips byte order marks and surrounding space from header cells
// and names blank ones "Unnamed: <index>".
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		// Byte order marks show up on the first header cell of CSVs exported from Excel.
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if out[i] == "" {
			out[i] = unnamedColumn(i)
		}
	}
	return out
}

// padRow returns a row of exactly n cells, padding short records with blanks.
// Callers ensure len(rec) <= n.
func padRow(rec []string, n int) []string {
	row := make([]string, n)
	copy(row, rec)
	return row
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric accepts plain decimal and scientific notation. NA-style markers
// common in R and pandas exports are treated as non-numeric.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	switch strings.ToUpper(raw) {
	case "", "NA", "N/A", "NAN", "NULL":
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
