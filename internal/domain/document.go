package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a budget document: a set of sections, a flat list of lines and
// currency metadata.
type Document struct {
	ID        string
	Name      string
	Meta      DocumentMeta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentMeta holds exchange-rate and labelling configuration. The
// calculation engine treats it as passthrough context; it is never derived.
type DocumentMeta struct {
	BaseCurrency string
	USDRate      decimal.Decimal
	EURRate      decimal.Decimal
	Donor        string
	Sector       string
}

// DefaultMeta returns metadata for a freshly created document.
func DefaultMeta() DocumentMeta {
	return DocumentMeta{
		BaseCurrency: "USD",
		USDRate:      decimal.NewFromInt(1),
		EURRate:      decimal.NewFromInt(1),
	}
}

// CostRecord is an indexed leaf cost, produced when a recalculated document is
// saved and consumed by the lookup service.
type CostRecord struct {
	ID          string
	Description string
	Category    string
	Unit        string
	UnitCost    decimal.Decimal
	Currency    string
	Year        int
	Donor       string
	Sector      string
	DocumentID  string
	UpdatedAt   time.Time
}
