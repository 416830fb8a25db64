package importer

import (
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/engine"
)

// ValidateImportFile checks every row and returns all problems found rather
// than stopping at the first, so a user can fix an import file in one pass.
func ValidateImportFile(f *ImportFile) []error {
	var errs []error
	if len(f.Rows) == 0 {
		errs = append(errs, fmt.Errorf("import file contains no rows"))
		return errs
	}

	for i, row := range f.Rows {
		ref := fmt.Sprintf("row %d", i+1)
		if strings.TrimSpace(row.Description) == "" {
			errs = append(errs, fmt.Errorf("%s: description is required", ref))
		}
		checkAmount(&errs, ref, "quantity", row.Quantity)
		checkAmount(&errs, ref, "frequency", row.Frequency)
		checkAmount(&errs, ref, "unit_cost", row.UnitCost)
	}
	return errs
}

func checkAmount(errs *[]error, ref, field string, v *string) {
	if v == nil {
		return
	}
	if _, err := engine.ParseAmount(*v); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %s %q is not a valid amount", ref, field, *v))
	}
}
