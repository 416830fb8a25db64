package engine

import (
	"github.com/avandyck/costline/internal/domain"
	"github.com/shopspring/decimal"
)

// Recalculate returns a copy of lines with every quantity, frequency, unit
// cost and total replaced by sanitized or derived values:
//
//   - leaf:   total = quantity * frequency * unit_cost
//   - parent: unit_cost = sum of children's totals (any stored value is
//     overwritten), then total = quantity * frequency * unit_cost
//
// Children are fully resolved before their parent, siblings in list order.
// The input slice is never mutated, output order matches input order, and the
// pass is idempotent: recalculating its own output changes nothing.
func Recalculate(lines []domain.Line) []domain.Line {
	out := make([]domain.Line, len(lines))
	copy(out, lines)

	ix := BuildIndex(lines)
	pos := make(map[string]int, len(out))
	for i := range out {
		if _, dup := pos[out[i].ID]; !dup {
			pos[out[i].ID] = i
		}
	}

	var compute func(id string) decimal.Decimal
	compute = func(id string) decimal.Decimal {
		l := &out[pos[id]]
		l.Quantity = Sanitize(l.Quantity)
		l.Frequency = Sanitize(l.Frequency)

		kids := ix.Children(id)
		if len(kids) == 0 {
			l.UnitCost = Sanitize(l.UnitCost)
		} else {
			sum := decimal.Zero
			for _, c := range kids {
				sum = sum.Add(compute(c))
			}
			l.UnitCost = sum
		}
		l.Total = l.Quantity.Mul(l.Frequency).Mul(l.UnitCost)
		return l.Total
	}

	for _, r := range ix.Roots() {
		compute(r)
	}
	return out
}

// Sanitize clamps a numeric field to the finite non-negative range the engine
// computes with. Negative values coerce to zero, matching the malformed-input
// policy.
func Sanitize(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
