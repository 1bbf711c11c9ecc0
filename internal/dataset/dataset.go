// Package dataset loads the bundled Seshat Global History Databank tables.
//
// Two releases are supported. PNAS2017 is the imputed dataset behind Turchin
// et al. (2018) and ships as a single CSV. Equinox is the 2020 release and
// ships as one workbook whose worksheets are selected by flavor.
package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/MichaelHoltonPrice/pyseshat/internal/analysis"
	"github.com/MichaelHoltonPrice/pyseshat/internal/parser"
)

// Dataset versions.
const (
	PNAS2017 = "PNAS2017"
	Equinox  = "Equinox"
)

// PNAS2017 flavors.
const (
	Imputations = "Imputations"
	PCs         = "PCs"
)

// Bundled file names inside the data directory.
const (
	EquinoxFile  = "Equinox_on_GitHub_June9_2022.xlsx"
	PNAS2017File = "data1.csv"
)

// DataDirEnv overrides the data directory used by the package-level helpers.
const DataDirEnv = "SESHAT_DATA_DIR"

var (
	versions          = []string{PNAS2017, Equinox}
	pnasFlavors       = []string{Imputations, PCs}
	equinoxWorksheets = []string{
		"Metadata",
		"Equinox2020_CanonDat",
		"CavIronHSData",
		"HistYield+",
		"TSDat123",
		"AggrSCWarAgriRelig",
		"ImpSCDat",
		"SPC_MilTech",
		"Polities",
		"Variables",
		"NGAs",
		"Scale_MI",
		"Class_MI",
	}
)

// Versions returns the supported dataset versions.
func Versions() []string { return slices.Clone(versions) }

// EquinoxWorksheets returns the worksheet names of the Equinox workbook.
func EquinoxWorksheets() []string { return slices.Clone(equinoxWorksheets) }

// Flavors returns the flavors accepted for version.
func Flavors(version string) ([]string, error) {
	switch version {
	case PNAS2017:
		return slices.Clone(pnasFlavors), nil
	case Equinox:
		return slices.Clone(equinoxWorksheets), nil
	}
	return nil, invalidVersion(version)
}

// ValidateVersion returns an *InvalidArgumentError unless version is supported.
func ValidateVersion(version string) error {
	if !slices.Contains(versions, version) {
		return invalidVersion(version)
	}
	return nil
}

func invalidVersion(version string) error {
	return &InvalidArgumentError{Param: "version", Value: version, Allowed: Versions()}
}

// Loader reads dataset tables from a data directory. The zero value reads
// from the current directory.
type Loader struct {
	DataDir string
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{DataDir: dir}
}

// DefaultLoader returns a Loader rooted at $SESHAT_DATA_DIR, or ./data.
func DefaultLoader() *Loader {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return NewLoader(dir)
	}
	return NewLoader("data")
}

// Load loads the default loader's table for (version, flavor).
func Load(version, flavor string) (*analysis.Table, error) {
	return DefaultLoader().Load(version, flavor)
}

// Load validates (version, flavor) and returns a freshly read table. An empty
// flavor means the flavor was omitted.
//
// The version is checked first, then flavor presence, then flavor value, so
// that a bad version is never reported as a missing flavor.
func (l *Loader) Load(version, flavor string) (*analysis.Table, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}
	var file, sheet string
	switch version {
	case Equinox:
		if flavor == "" {
			return nil, &MissingArgumentError{Param: "flavor (worksheet)", Condition: "for the Equinox dataset"}
		}
		if !slices.Contains(equinoxWorksheets, flavor) {
			return nil, &InvalidArgumentError{Param: "Equinox worksheet (flavor)", Value: flavor, Allowed: EquinoxWorksheets()}
		}
		file, sheet = EquinoxFile, flavor
	case PNAS2017:
		if flavor == "" {
			return nil, &MissingArgumentError{Param: "flavor (Imputations or PCs)", Condition: "for the PNAS2017 dataset"}
		}
		if !slices.Contains(pnasFlavors, flavor) {
			return nil, &InvalidArgumentError{Param: "PNAS2017 flavor", Value: flavor, Allowed: slices.Clone(pnasFlavors)}
		}
		// Both flavors are read from the same file.
		file = PNAS2017File
	}

	path := filepath.Join(l.DataDir, file)
	slog.Debug("loading seshat table", "version", version, "flavor", flavor, "path", path)
	t, err := parser.ReadFile(path, sheet)
	if err != nil {
		return nil, &ResourceUnavailableError{Path: path, Err: err}
	}
	if version == Equinox {
		t.Name = flavor
	} else {
		t.Name = version + "/" + flavor
	}
	rows, cols := t.Shape()
	slog.Debug("loaded seshat table", "name", t.Name, "rows", rows, "cols", cols)
	return t, nil
}
