package sales

import (
	"fmt"
	"slices"

	"github.com/TFMV/salesgen/pkg/sampling"
)

// PricingMode selects how a unit price tier is chosen.
type PricingMode string

const (
	// PricingLegacy matches the tier lists against the segment name. No
	// segment name is a category, so every sale lands in the standard tier.
	// It is the default so existing datasets keep their price distribution.
	PricingLegacy PricingMode = "legacy"

	// PricingCategory matches the tier lists against the sampled category.
	PricingCategory PricingMode = "category"
)

// Price tiers.
var (
	PremiumTier  = sampling.IntRange{Lo: 2000, Hi: 3000}
	MidTier      = sampling.IntRange{Lo: 1500, Hi: 3000}
	StandardTier = sampling.IntRange{Lo: 900, Hi: 1500}
)

var premiumCategories = []string{"Shirts", "T-Shirts", "Polos", "Tops", "Dresses", "Pants"}

var midCategories = []string{"Outwear", "Jeans", "Hoodies & Sweatshirts", "Jacket & Coats", "Leggings", "Skirts"}

// ParsePricingMode converts a config value into a PricingMode.
func ParsePricingMode(s string) (PricingMode, error) {
	switch m := PricingMode(s); m {
	case PricingLegacy, PricingCategory:
		return m, nil
	case "":
		return PricingLegacy, nil
	default:
		return "", fmt.Errorf("unknown pricing mode %q (want %q or %q)", s, PricingLegacy, PricingCategory)
	}
}

// TierFor returns the price range for a sale.
func (m PricingMode) TierFor(segment, category string) sampling.IntRange {
	key := category
	if m != PricingCategory {
		key = segment
	}

	switch {
	case slices.Contains(premiumCategories, key):
		return PremiumTier
	case slices.Contains(midCategories, key):
		return MidTier
	default:
		return StandardTier
	}
}
