package formatter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a decimal amount with thousands separators and two
// decimal places, e.g. "1,234,567.89".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatAmount renders a quantity-style decimal without padding zeros:
// whole numbers print bare, fractions keep their digits.
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}
