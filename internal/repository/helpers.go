package repository

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// decimalOrZero parses a stored decimal column. A corrupt value degrades to
// zero instead of failing the load; the engine sanitizes on recalculation
// anyway.
func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// nullableStrToPtr converts a sql.NullString to a *string, mapping NULL and
// empty to nil.
func nullableStrToPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// ptrToNullableStr converts a *string to a value suitable for SQLite storage.
func ptrToNullableStr(p *string) interface{} {
	if p == nil || *p == "" {
		return nil
	}
	return *p
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
