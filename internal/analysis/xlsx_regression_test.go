package analysis

import (
	"testing"
)

// TestXLSXRelationshipPathNormalization covers relationship targets written
// with a leading slash (e.g. "/xl/worksheets/sheet1.xml"). The ZIP entry has
// no leading slash, so the target must be normalized before lookup.
func TestXLSXRelationshipPathNormalization(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"styles.xml", "xl/styles.xml"},
		{"/xl/styles.xml", "xl/styles.xml"},
	}
	for _, tt := range tests {
		got := normalizeRelPath(tt.input)
		if got != tt.expected {
			t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestColIndexFromRef(t *testing.T) {
	tests := map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA10": 26, "ab7": 27}
	for ref, want := range tests {
		if got := colIndexFromRef(ref); got != want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", ref, got, want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	ok := map[string]float64{"1": 1, " 2.5 ": 2.5, "-3e2": -300, "0.000": 0}
	for in, want := range ok {
		got, parsed := parseNumeric(in)
		if !parsed || got != want {
			t.Errorf("parseNumeric(%q) = (%v, %v), want (%v, true)", in, got, parsed, want)
		}
	}
	for _, in := range []string{"", "NA", "nan", "abc", "1,5", "Inf"} {
		if _, parsed := parseNumeric(in); parsed {
			t.Errorf("parseNumeric(%q) parsed, want rejection", in)
		}
	}
}
