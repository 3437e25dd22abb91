package cart

import (
	"github.com/zaikahouse/storefront/models"
)

// Variant selects which price tier of a menu item a cart line uses.
type Variant string

const (
	VariantSingle Variant = "SINGLE"
	VariantHalf   Variant = "HALF"
	VariantFull   Variant = "FULL"
)

// ParseVariant maps a stored variant string to a Variant, falling back to
// SINGLE for anything empty or unknown (historical orders may predate the
// half/full split).
func ParseVariant(s string) Variant {
	switch Variant(s) {
	case VariantHalf:
		return VariantHalf
	case VariantFull:
		return VariantFull
	default:
		return VariantSingle
	}
}

func (v Variant) Valid() bool {
	return v == VariantSingle || v == VariantHalf || v == VariantFull
}

// ResolvePrice returns the unit price of item for the chosen variant.
// A variant that does not match the item's pricing type resolves to 0
// because the corresponding column is stored as zero; callers get no error.
func ResolvePrice(item models.Menu, v Variant) float64 {
	switch v {
	case VariantSingle:
		return item.Price
	case VariantHalf:
		return item.PriceHalf
	case VariantFull:
		return item.PriceFull
	}
	return 0
}
