package analysis

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrSheetNotFound is returned when a workbook has no worksheet with the
// requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadXLSXSheet loads the worksheet named sheetName from a .xlsx workbook into
// a Table. The first row of the sheet is the header. Sheet names match exactly.
func ReadXLSXSheet(path string, sheetName string) (*Table, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	target, ok := wb.sheetPath(sheetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q in workbook %q (available: %s)",
			ErrSheetNotFound, sheetName, filepath.Base(path), strings.Join(wb.sheetNames(), ", "))
	}
	sheetXML, err := readZipFile(wb.zr, target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	t := &Table{Name: sheetName}
	rr := newSheetRowReader(sheetXML, wb.shared)
	// Blank rows above the header are skipped.
	var header []string
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		if dataWidth(row) > 0 {
			header = row
			break
		}
	}
	var rows [][]string
	if header != nil {
		for {
			row, ok := rr.Next()
			if !ok {
				break
			}
			rows = append(rows, row)
		}
	}
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("parse sheet %q: %w", sheetName, err)
	}
	if header == nil {
		return t, nil
	}
	for len(rows) > 0 && dataWidth(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	t.Columns = cleanHeader(header[:dataWidth(header)])
	width := len(t.Columns)
	for _, row := range rows {
		width = max(width, dataWidth(row))
	}
	// Cells right of the header get generated column names.
	for j := len(t.Columns); j < width; j++ {
		t.Columns = append(t.Columns, unnamedColumn(j))
	}
	t.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		t.Rows = append(t.Rows, padRow(row, width))
	}
	return t, nil
}

// dataWidth is the index of the last non-blank cell plus one.
func dataWidth(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if row[i] != "" {
			return i + 1
		}
	}
	return 0
}

// SheetNames lists the worksheet names of a .xlsx workbook in workbook order.
func SheetNames(path string) ([]string, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	return wb.sheetNames(), nil
}

type workbook struct {
	zr     *zip.Reader
	sheets []wbSheet
	rels   map[string]string
	shared []string
}

func openWorkbook(path string) (*workbook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	workbookXML, err := readZipFile(zr, "xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	relsXML, err := readZipFile(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	// sharedStrings.xml is absent from workbooks that only hold numbers.
	sharedXML, _ := readZipFile(zr, "xl/sharedStrings.xml")
	return &workbook{
		zr:     zr,
		sheets: parseWorkbook(workbookXML),
		rels:   parseRelationships(relsXML),
		shared: parseSharedStrings(sharedXML),
	}, nil
}

func (wb *workbook) sheetPath(name string) (string, bool) {
	for _, s := range wb.sheets {
		if s.Name != name {
			continue
		}
		rel, ok := wb.rels[s.RID]
		if !ok {
			return "", false
		}
		return normalizeRelPath(rel), true
	}
	return "", false
}

func (wb *workbook) sheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.Name
	}
	return names
}

// parseWorkbook extracts sheet entries with names and relationship ids.
func parseWorkbook(data []byte) []wbSheet {
	var sheets []wbSheet
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "id":
				s.RID = a.Value // in r: namespace
			}
		}
		sheets = append(sheets, s)
	}
}

type wbSheet struct {
	Name string
	RID  string
}

// parseRelationships returns map[r:id]Target.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	}
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing part %s", name)
}

// parseSharedStrings concatenates the text runs of each <si>. Phonetic hints
// (<rPh>) are skipped.
func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT, inRPh bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "rPh":
				inRPh = true
			case "t":
				inT = !inRPh
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "rPh":
				inRPh = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

// sheetRowReader streams rows from a worksheet part. Rows missing from the
// sheet XML between two present rows are returned as empty rows.
type sheetRowReader struct {
	dec     *xml.Decoder
	shared  []string
	inRow   bool
	rowNum  int
	lastRow int
	curRow  []string
	maxCol  int
	gap     int
	pending []string
	err     error
}

func newSheetRowReader(data []byte, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

// Err reports the first non-EOF decode error seen by Next.
func (r *sheetRowReader) Err() error { return r.err }

func (r *sheetRowReader) Next() ([]string, bool) {
	if r.gap > 0 {
		r.gap--
		return []string{}, true
	}
	if r.pending != nil {
		row := r.pending
		r.pending = nil
		return row, true
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.curRow = nil
				r.maxCol = 0
				r.rowNum = r.lastRow + 1
				for _, a := range se.Attr {
					if a.Name.Local == "r" {
						if n := atoiSafe(a.Value); n > r.lastRow {
							r.rowNum = n
						}
					}
				}
			}
			if r.inRow && se.Name.Local == "c" {
				var rAttr, tAttr string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						rAttr = a.Value
					case "t":
						tAttr = a.Value
					}
				}
				// Cells without a reference follow the previous cell.
				colIdx := len(r.curRow)
				if rAttr != "" {
					colIdx = colIndexFromRef(rAttr)
				}
				if colIdx < 0 {
					colIdx = len(r.curRow)
				}
				if colIdx+1 > r.maxCol {
					r.maxCol = colIdx + 1
				}
				val := r.readCellValue(tAttr)
				if len(r.curRow) <= colIdx {
					tmp := make([]string, colIdx+1)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.curRow[colIdx] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				row := make([]string, max(r.maxCol, len(r.curRow)))
				copy(row, r.curRow)
				r.inRow = false
				gap := r.rowNum - r.lastRow - 1
				r.lastRow = r.rowNum
				if gap > 0 {
					r.gap = gap - 1
					r.pending = row
					return []string{}, true
				}
				return row, true
			}
		}
	}
}

// readCellValue consumes tokens up to </c> and returns the cell text,
// resolving shared strings and booleans. The runs of a rich-text inline
// string are concatenated; phonetic hints (<rPh>) are skipped.
func (r *sheetRowReader) readCellValue(tAttr string) string {
	var sb strings.Builder
	inRPh := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return sb.String()
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "rPh":
				inRPh = true
			case "v", "t":
				if !inRPh {
					r.readText(&sb, se.Name.Local)
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "rPh":
				inRPh = false
			case "c":
				val := sb.String()
				switch tAttr {
				case "s":
					idx := atoiSafe(val)
					if val != "" && idx < len(r.shared) {
						return r.shared[idx]
					}
					return ""
				case "b":
					if val == "1" {
						return "TRUE"
					}
					return "FALSE"
				case "e":
					return ""
				}
				return val
			}
		}
	}
}

// readText appends character data up to the closing </name>.
func (r *sheetRowReader) readText(sb *strings.Builder, name string) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return
		}
		switch tk := tok.(type) {
		case xml.EndElement:
			if tk.Name.Local == name {
				return
			}
		case xml.CharData:
			sb.Write(tk)
		}
	}
}

// colIndexFromRef maps refs like "C12" to a 0-based column index (2).
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			i++
			continue
		}
		break
	}
	s := strings.ToUpper(ref[:i])
	idx := 0
	for j := 0; j < len(s); j++ {
		idx = idx*26 + int(s[j]-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship Target paths to ZIP entry names.
// Targets may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return "xl/" + rel
}

// unnamedColumn names a column that has no header cell.
func unnamedColumn(j int) string {
	return "Unnamed: " + strconv.Itoa(j)
}
