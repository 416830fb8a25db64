package domain

// CapType describes the optional spending ceiling on a section's subtotal.
type CapType string

const (
	CapNone    CapType = "none"
	CapFixed   CapType = "fixed-amount"
	CapPercent CapType = "percent-of-grand-total"
)

// ValidCapTypes is the canonical set of accepted cap type strings.
var ValidCapTypes = map[string]bool{
	"none": true, "fixed-amount": true, "percent-of-grand-total": true,
}
