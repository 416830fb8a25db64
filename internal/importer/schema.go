// Package importer turns externally produced candidate rows into sections and
// top-level budget lines. Row extraction from the source spreadsheet happens
// upstream; this package only validates and converts the flat candidate list.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportFile is the top-level JSON structure for a bulk line import.
type ImportFile struct {
	Rows []RowImport `json:"rows"`
}

// RowImport is one candidate budget line. Numeric fields are strings so the
// tolerant amount grammar applies ("1.234,56", "10%", "3*4" are all valid).
type RowImport struct {
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Note        string  `json:"note,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	UnitCost    *string `json:"unit_cost,omitempty"`
}

// LoadImportFile reads and parses a bulk import JSON file.
func LoadImportFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f ImportFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}
