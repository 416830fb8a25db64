package importer

import (
	"strings"
	"time"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConvertResult holds the entities generated from an import file.
type ConvertResult struct {
	NewSections []domain.Section
	Lines       []domain.Line
}

// Convert maps candidate rows onto top-level lines, grouping them into
// sections named after each row's category. Existing sections are reused by
// case-insensitive name; missing ones are created on demand, ordered after
// the existing ones in first-appearance order. The returned lines carry no
// parent references and still need a recalculation pass.
func Convert(documentID string, f *ImportFile, existing []domain.Section) *ConvertResult {
	now := time.Now().UTC()
	res := &ConvertResult{}

	sectionByName := make(map[string]string, len(existing))
	nextOrder := 0
	for _, s := range existing {
		sectionByName[strings.ToLower(s.Name)] = s.ID
		if s.OrderIndex >= nextOrder {
			nextOrder = s.OrderIndex + 1
		}
	}

	sectionFor := func(category string) string {
		name := domain.CoalesceStr(strings.TrimSpace(category), "General")
		if id, ok := sectionByName[strings.ToLower(name)]; ok {
			return id
		}
		s := domain.Section{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Name:       name,
			CapType:    domain.CapNone,
			CapValue:   decimal.Zero,
			OrderIndex: nextOrder,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		nextOrder++
		sectionByName[strings.ToLower(name)] = s.ID
		res.NewSections = append(res.NewSections, s)
		return s.ID
	}

	for _, row := range f.Rows {
		l := domain.Line{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			SectionID:   sectionFor(row.Category),
			Category:    strings.TrimSpace(row.Category),
			Description: strings.TrimSpace(row.Description),
			Note:        row.Note,
			Unit:        strings.TrimSpace(row.Unit),
			Quantity:    amountOrDefault(row.Quantity, decimal.NewFromInt(1)),
			Frequency:   amountOrDefault(row.Frequency, decimal.NewFromInt(1)),
			UnitCost:    amountOrDefault(row.UnitCost, decimal.Zero),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		res.Lines = append(res.Lines, l)
	}
	return res
}

// amountOrDefault parses an optional amount through the tolerant grammar.
// Validation has already flagged unparsable values; any that slip through
// degrade to the fallback.
func amountOrDefault(v *string, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	d, err := engine.ParseAmount(*v)
	if err != nil {
		return fallback
	}
	return engine.Sanitize(d)
}
