package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Section is a named grouping of top-level lines. Sections do not nest.
type Section struct {
	ID         string
	DocumentID string
	Name       string
	Collapsed  bool // presentation only
	CapType    CapType
	CapValue   decimal.Decimal
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
