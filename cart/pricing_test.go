package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zaikahouse/storefront/models"
)

func TestResolvePriceSingle(t *testing.T) {
	item := models.Menu{ID: 1, PricingType: models.PricingSingle, Price: 120}

	assert.Equal(t, 120.0, ResolvePrice(item, VariantSingle))
	// Half/full fields are zero on a single priced item
	assert.Equal(t, 0.0, ResolvePrice(item, VariantHalf))
	assert.Equal(t, 0.0, ResolvePrice(item, VariantFull))
}

func TestResolvePriceHalfFull(t *testing.T) {
	item := models.Menu{ID: 2, PricingType: models.PricingHalfFull, PriceHalf: 110, PriceFull: 200}

	assert.Equal(t, 110.0, ResolvePrice(item, VariantHalf))
	assert.Equal(t, 200.0, ResolvePrice(item, VariantFull))
	// Mismatched variant silently resolves to the absent field, i.e. zero
	assert.Equal(t, 0.0, ResolvePrice(item, VariantSingle))
}

func TestResolvePriceUnknownVariant(t *testing.T) {
	item := models.Menu{ID: 3, PricingType: models.PricingSingle, Price: 50}

	assert.Equal(t, 0.0, ResolvePrice(item, Variant("COMBO")))
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantHalf, ParseVariant("HALF"))
	assert.Equal(t, VariantFull, ParseVariant("FULL"))
	assert.Equal(t, VariantSingle, ParseVariant("SINGLE"))
	// Historical orders may carry no variant at all
	assert.Equal(t, VariantSingle, ParseVariant(""))
	assert.Equal(t, VariantSingle, ParseVariant("garbage"))
}
