package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single budget entry. A line is either a leaf (its unit cost is
// entered directly) or a parent (its unit cost is derived from the totals of
// its children during recalculation). Hierarchy is expressed through ParentID
// references into the same flat list, never through embedded pointers.
type Line struct {
	ID         string
	DocumentID string
	SectionID  string
	ParentID   *string

	Category    string
	Description string
	Note        string
	Unit        string

	Quantity  decimal.Decimal
	Frequency decimal.Decimal
	UnitCost  decimal.Decimal
	Total     decimal.Decimal // always derived, never entered

	Selected bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParent reports whether the line carries a parent reference. The
// reference may still be dangling; resolution happens at index build time.
func (l *Line) HasParent() bool {
	return l.ParentID != nil && *l.ParentID != ""
}
