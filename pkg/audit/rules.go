package audit

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/TFMV/salesgen/pkg/catalog"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/pkg/sampling"
)

// TotalAmountRule checks that the total is exactly price times quantity.
type TotalAmountRule struct{}

// Check implements Rule.Check.
func (TotalAmountRule) Check(tx sales.Transaction) error {
	if want := tx.Price * tx.Quantity; tx.Total != want {
		return fmt.Errorf("total %d, want %d x %d = %d", tx.Total, tx.Price, tx.Quantity, want)
	}
	return nil
}

// Name implements Rule.Name.
func (TotalAmountRule) Name() string { return "TotalAmountRule" }

// Description implements Rule.Description.
func (TotalAmountRule) Description() string {
	return "Total Amount equals Price multiplied by Qty Item"
}

// LocationRule checks that the city belongs to the province.
type LocationRule struct{}

// Check implements Rule.Check.
func (LocationRule) Check(tx sales.Transaction) error {
	if catalog.Cities(tx.Province) == nil {
		return fmt.Errorf("unknown province %q", tx.Province)
	}
	if !catalog.HasCity(tx.Province, tx.City) {
		return fmt.Errorf("city %q is not in province %q", tx.City, tx.Province)
	}
	return nil
}

// Name implements Rule.Name.
func (LocationRule) Name() string { return "LocationRule" }

// Description implements Rule.Description.
func (LocationRule) Description() string {
	return "City belongs to the city list of Province"
}

// BrandSegmentRule checks that the brand is known and sells the segment.
type BrandSegmentRule struct{}

// Check implements Rule.Check.
func (BrandSegmentRule) Check(tx sales.Transaction) error {
	b, ok := catalog.LookupBrand(tx.Brand)
	if !ok {
		return fmt.Errorf("unknown brand %q", tx.Brand)
	}
	if !slices.Contains(b.Segments.Values(), tx.Segment) {
		return fmt.Errorf("brand %q has no segment %q", tx.Brand, tx.Segment)
	}
	return nil
}

// Name implements Rule.Name.
func (BrandSegmentRule) Name() string { return "BrandSegmentRule" }

// Description implements Rule.Description.
func (BrandSegmentRule) Description() string {
	return "Brand is a catalog brand and Segment is one of its segments"
}

// CategoryRule checks that the category is sold in the segment.
type CategoryRule struct{}

// Check implements Rule.Check.
func (CategoryRule) Check(tx sales.Transaction) error {
	if !catalog.HasCategory(tx.Segment, tx.Category) {
		return fmt.Errorf("category %q is not sold in segment %q", tx.Category, tx.Segment)
	}
	return nil
}

// Name implements Rule.Name.
func (CategoryRule) Name() string { return "CategoryRule" }

// Description implements Rule.Description.
func (CategoryRule) Description() string {
	return "Brand Category belongs to the category list of Segment"
}

// ReturnRule checks that only poorly rated purchases are returned.
type ReturnRule struct{}

// Check implements Rule.Check.
func (ReturnRule) Check(tx sales.Transaction) error {
	if !catalog.IsRating(tx.Rating) {
		return fmt.Errorf("unknown rating %q", tx.Rating)
	}
	if catalog.IsNegativeRating(tx.Rating) {
		if tx.Returned != sales.Yes && tx.Returned != sales.No {
			return fmt.Errorf("returned flag %q, want Yes or No", tx.Returned)
		}
		return nil
	}
	if tx.Returned != sales.No {
		return fmt.Errorf("rating %q was returned (%q)", tx.Rating, tx.Returned)
	}
	return nil
}

// Name implements Rule.Name.
func (ReturnRule) Name() string { return "ReturnRule" }

// Description implements Rule.Description.
func (ReturnRule) Description() string {
	return "Returned is No unless Rating is Poor or Unsatisfactory"
}

var transactionIDPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// TransactionIDRule checks the ID format.
type TransactionIDRule struct{}

// Check implements Rule.Check.
func (TransactionIDRule) Check(tx sales.Transaction) error {
	if !transactionIDPattern.MatchString(tx.ID) {
		return fmt.Errorf("transaction ID %q is not 10 characters of [A-Z0-9]", tx.ID)
	}
	return nil
}

// Name implements Rule.Name.
func (TransactionIDRule) Name() string { return "TransactionIDRule" }

// Description implements Rule.Description.
func (TransactionIDRule) Description() string {
	return "Transaction ID is exactly 10 characters drawn from A-Z and 0-9"
}

// RangeRule checks that an integer field lies in an inclusive range.
type RangeRule struct {
	Field string
	Range sampling.IntRange
	Value func(sales.Transaction) int
}

// Check implements Rule.Check.
func (r RangeRule) Check(tx sales.Transaction) error {
	if v := r.Value(tx); !r.Range.Contains(v) {
		return fmt.Errorf("%s %d outside [%d, %d]", r.Field, v, r.Range.Lo, r.Range.Hi)
	}
	return nil
}

// Name implements Rule.Name.
func (r RangeRule) Name() string { return r.Field + "RangeRule" }

// Description implements Rule.Description.
func (r RangeRule) Description() string {
	return fmt.Sprintf("%s lies within [%d, %d]", r.Field, r.Range.Lo, r.Range.Hi)
}

// AgeRule checks customer ages.
var AgeRule = RangeRule{
	Field: "Age",
	Range: sampling.IntRange{Lo: 18, Hi: 50},
	Value: func(tx sales.Transaction) int { return tx.Age },
}

// QuantityRule checks item counts.
var QuantityRule = RangeRule{
	Field: "Quantity",
	Range: sampling.IntRange{Lo: 1, Hi: 10},
	Value: func(tx sales.Transaction) int { return tx.Quantity },
}

// YearRule checks transaction years.
var YearRule = RangeRule{
	Field: "Year",
	Range: sampling.IntRange{Lo: 2020, Hi: 2024},
	Value: func(tx sales.Transaction) int { return tx.Date.Year() },
}

// PriceTierRule checks that the unit price lies in the tier the pricing
// mode assigns to the sale.
type PriceTierRule struct {
	Mode sales.PricingMode
}

// Check implements Rule.Check.
func (r PriceTierRule) Check(tx sales.Transaction) error {
	tier := r.Mode.TierFor(tx.Segment, tx.Category)
	if !tier.Contains(tx.Price) {
		return fmt.Errorf("price %d outside %s tier %s for %q", tx.Price, r.Mode, tier, tx.Category)
	}
	return nil
}

// Name implements Rule.Name.
func (r PriceTierRule) Name() string { return "PriceTierRule" }

// Description implements Rule.Description.
func (r PriceTierRule) Description() string {
	return fmt.Sprintf("Price lies within the %s pricing tier of the sale", r.Mode)
}
