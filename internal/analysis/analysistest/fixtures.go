// Package analysistest writes small CSV and XLSX workbooks for tests.
package analysistest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

// Sheet is one worksheet of a generated workbook. Rows[0] is the header.
// Cells that parse as numbers are written as numeric cells, everything else
// as shared strings.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteCSV writes rows as comma-separated lines to path.
func WriteCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv fixture: %v", err)
	}
}

// WriteXLSX writes a minimal but valid .xlsx workbook to path.
func WriteXLSX(t testing.TB, path string, sheets []Sheet) {
	t.Helper()
	data, err := BuildXLSX(sheets)
	if err != nil {
		t.Fatalf("build xlsx fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write xlsx fixture: %v", err)
	}
}

// WriteRawXLSX writes a single-sheet workbook whose <sheetData> content is
// sheetData verbatim. It has no shared strings table, so text cells must be
// inline strings.
func WriteRawXLSX(t testing.TB, path, sheetName, sheetData string) {
	t.Helper()
	data, err := packWorkbook([]string{sheetName}, []string{sheetData}, nil)
	if err != nil {
		t.Fatalf("build xlsx fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write xlsx fixture: %v", err)
	}
}

// BuildXLSX renders sheets into the bytes of a .xlsx file.
func BuildXLSX(sheets []Sheet) ([]byte, error) {
	var shared []string
	sharedIdx := map[string]int{}
	intern := func(s string) int {
		if i, ok := sharedIdx[s]; ok {
			return i
		}
		sharedIdx[s] = len(shared)
		shared = append(shared, s)
		return len(shared) - 1
	}

	names := make([]string, len(sheets))
	bodies := make([]string, len(sheets))
	for i, sh := range sheets {
		var ws strings.Builder
		for r, row := range sh.Rows {
			fmt.Fprintf(&ws, `<row r="%d">`, r+1)
			for c, cell := range row {
				if cell == "" {
					continue
				}
				ref := colName(c) + strconv.Itoa(r+1)
				if _, err := strconv.ParseFloat(cell, 64); err == nil {
					fmt.Fprintf(&ws, `<c r="%s"><v>%s</v></c>`, ref, cell)
					continue
				}
				fmt.Fprintf(&ws, `<c r="%s" t="s"><v>%d</v></c>`, ref, intern(cell))
			}
			ws.WriteString(`</row>`)
		}
		names[i] = sh.Name
		bodies[i] = ws.String()
	}
	return packWorkbook(names, bodies, shared)
}

// packWorkbook zips worksheets (by name and <sheetData> content) together
// with the workbook, relationship and content-type parts. A shared strings
// part is written only when shared is non-empty.
func packWorkbook(names, sheetData, shared []string) ([]byte, error) {
	parts := map[string]string{}
	var order []string
	add := func(name, body string) {
		parts[name] = body
		order = append(order, name)
	}

	var wb, rels, types strings.Builder
	wb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	wb.WriteString(`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>`)
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	types.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	types.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	types.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	types.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	types.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`)

	for i, name := range names {
		n := i + 1
		fmt.Fprintf(&wb, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, escape(name), n, n)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, n, n)
		fmt.Fprintf(&types, `<Override PartName="/xl/worksheets/sheet%d.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`, n)
		add(fmt.Sprintf("xl/worksheets/sheet%d.xml", n),
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`+
				sheetData[i]+`</sheetData></worksheet>`)
	}
	if len(shared) > 0 {
		n := len(names) + 1
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`, n)
		types.WriteString(`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>`)
	}
	wb.WriteString(`</sheets></workbook>`)
	rels.WriteString(`</Relationships>`)
	types.WriteString(`</Types>`)

	add("[Content_Types].xml", types.String())
	add("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`)
	add("xl/workbook.xml", wb.String())
	add("xl/_rels/workbook.xml.rels", rels.String())
	if len(shared) > 0 {
		var ss strings.Builder
		ss.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
		fmt.Fprintf(&ss, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(shared), len(shared))
		for _, s := range shared {
			fmt.Fprintf(&ss, `<si><t xml:space="preserve">%s</t></si>`, escape(s))
		}
		ss.WriteString(`</sst>`)
		add("xl/sharedStrings.xml", ss.String())
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// colName maps a 0-based column index to its spreadsheet letters (0 -> A, 26 -> AA).
func colName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
