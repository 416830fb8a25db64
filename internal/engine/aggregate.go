package engine

import (
	"github.com/avandyck/costline/internal/domain"
	"github.com/shopspring/decimal"
)

// SectionSummary carries the derived figures for one section.
type SectionSummary struct {
	SectionID string
	Subtotal  decimal.Decimal
	Percent   decimal.Decimal // share of the grand total, 0-100
	HasCap    bool
	CapLimit  decimal.Decimal
	OverCap   bool // warning only, never blocks an edit
}

// Summary holds the aggregate figures for a recalculated document.
type Summary struct {
	GrandTotal decimal.Decimal
	Sections   []SectionSummary // same order as the input sections
}

var hundred = decimal.NewFromInt(100)

// Summarize derives the grand total, per-section subtotals, percentages and
// cap flags from a recalculated line list. Only top-level lines are summed:
// child totals are already folded into their parents, so counting every line
// would double-count.
func Summarize(lines []domain.Line, sections []domain.Section) Summary {
	ix := BuildIndex(lines)
	top := make(map[string]bool, len(ix.Roots()))
	for _, id := range ix.Roots() {
		top[id] = true
	}

	grand := decimal.Zero
	bySection := make(map[string]decimal.Decimal, len(sections))
	for _, l := range lines {
		if !top[l.ID] {
			continue
		}
		grand = grand.Add(l.Total)
		bySection[l.SectionID] = bySection[l.SectionID].Add(l.Total)
	}

	out := Summary{GrandTotal: grand}
	for _, s := range sections {
		sub := bySection[s.ID]
		ss := SectionSummary{SectionID: s.ID, Subtotal: sub}
		if !grand.IsZero() {
			ss.Percent = sub.Mul(hundred).Div(grand)
		}
		switch s.CapType {
		case domain.CapFixed:
			ss.HasCap = true
			ss.CapLimit = s.CapValue
		case domain.CapPercent:
			ss.HasCap = true
			ss.CapLimit = grand.Mul(s.CapValue).Div(hundred)
		}
		if ss.HasCap && sub.GreaterThan(ss.CapLimit) {
			ss.OverCap = true
		}
		out.Sections = append(out.Sections, ss)
	}
	return out
}
