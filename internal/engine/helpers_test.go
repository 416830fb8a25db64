package engine

import (
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testLine builds a line for engine tests. parentID == "" means top level.
func testLine(id, sectionID, parentID, qty, freq, cost string) domain.Line {
	l := domain.Line{
		ID:         id,
		DocumentID: "doc-1",
		SectionID:  sectionID,
		Quantity:   decimal.RequireFromString(qty),
		Frequency:  decimal.RequireFromString(freq),
		UnitCost:   decimal.RequireFromString(cost),
	}
	if parentID != "" {
		l.ParentID = &parentID
	}
	return l
}

func lineByID(t *testing.T, lines []domain.Line, id string) domain.Line {
	t.Helper()
	for _, l := range lines {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("line %s not found", id)
	return domain.Line{}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"got %s, want %s", got, want)
}
