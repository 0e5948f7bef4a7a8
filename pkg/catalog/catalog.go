// Package catalog holds the static reference tables the sales generator draws from.
//
// Every table is an ordered slice so that a seeded run walks the same
// candidates in the same order on every invocation.
package catalog

import (
	"slices"

	"github.com/TFMV/salesgen/pkg/sampling"
)

// Segment names.
const (
	Men   = "Men"
	Women = "Women"
	Kids  = "Kids"
)

// Rating labels, worst to best.
const (
	Poor             = "Poor"
	Unsatisfactory   = "Unsatisfactory"
	Satisfactory     = "Satisfactory"
	VerySatisfactory = "Very Satisfactory"
	Outstanding      = "Outstanding"
)

// Province is a province and the cities sales are recorded in.
type Province struct {
	Name   string
	Cities []string
}

// Brand is a clothing brand and the segment mix of its sales.
type Brand struct {
	Name     string
	Segments *sampling.Weighted[string]
}

// SegmentCatalog lists the clothing categories sold in a segment.
type SegmentCatalog struct {
	Name       string
	Categories []string
}

var locations = []Province{
	{Name: "Metro Manila", Cities: []string{"Makati", "Taguig", "Pasig", "Manila", "Quezon City"}},
	{Name: "Cavite", Cities: []string{"Bacoor", "Dasmariñas", "Imus"}},
	{Name: "Laguna", Cities: []string{"Calamba", "San Pedro", "Santa Rosa"}},
	{Name: "Batangas", Cities: []string{"Batangas City", "Lipa", "Tanauan"}},
	{Name: "Rizal", Cities: []string{"Antipolo", "Taytay", "Cainta"}},
	{Name: "Bulacan", Cities: []string{"Malolos", "Meycauayan", "San Jose del Monte"}},
	{Name: "Pangasinan", Cities: []string{"Dagupan", "Urdaneta", "Mangaldan", "San Fabian", "San Carlos"}},
}

func segmentMix(men, women, kids float64) *sampling.Weighted[string] {
	return sampling.MustWeighted(
		sampling.Entry[string]{Value: Men, Weight: men},
		sampling.Entry[string]{Value: Women, Weight: women},
		sampling.Entry[string]{Value: Kids, Weight: kids},
	)
}

var brands = []Brand{
	{Name: "Nike", Segments: segmentMix(0.4, 0.4, 0.2)},
	{Name: "Adidas", Segments: segmentMix(0.5, 0.3, 0.2)},
	{Name: "Puma", Segments: segmentMix(0.3, 0.5, 0.2)},
	{Name: "Uniqlo", Segments: segmentMix(0.2, 0.5, 0.3)},
	{Name: "H&M", Segments: segmentMix(0.5, 0.4, 0.1)},
	{Name: "Lee", Segments: segmentMix(0.4, 0.4, 0.2)},
	{Name: "Gap", Segments: segmentMix(0.3, 0.5, 0.2)},
}

var segments = []SegmentCatalog{
	{Name: Men, Categories: []string{
		"Shirts", "T-Shirts", "Polos", "Outwear", "Jeans", "Hoodies & Sweatshirts",
		"Pants", "Shorts", "Underwear & Lounge wear",
	}},
	{Name: Women, Categories: []string{
		"Tops", "Dresses", "Shorts", "Skirts", "Pants", "Leggings", "Jeans",
		"Jacket & Coats", "Lingerie & Lounge wear",
	}},
	{Name: Kids, Categories: []string{
		"Tops", "Shirts", "Polos", "Hoodies & Sweatshirts", "Jacket & Coats", "Dresses",
		"Pants", "Leggings", "Jeans", "Shorts", "Sleepwear", "Underwear",
	}},
}

var ratings = sampling.MustWeighted(
	sampling.Entry[string]{Value: Poor, Weight: 0.03},
	sampling.Entry[string]{Value: Unsatisfactory, Weight: 0.06},
	sampling.Entry[string]{Value: Satisfactory, Weight: 0.17},
	sampling.Entry[string]{Value: VerySatisfactory, Weight: 0.39},
	sampling.Entry[string]{Value: Outstanding, Weight: 0.35},
)

// Locations returns the provinces in table order.
func Locations() []Province {
	return locations
}

// Brands returns the brands in table order.
func Brands() []Brand {
	return brands
}

// Segments returns the segment catalogs in table order.
func Segments() []SegmentCatalog {
	return segments
}

// Ratings returns the rating distribution.
func Ratings() *sampling.Weighted[string] {
	return ratings
}

// Cities returns the cities of a province, or nil if the province is unknown.
func Cities(province string) []string {
	for _, p := range locations {
		if p.Name == province {
			return p.Cities
		}
	}
	return nil
}

// Categories returns the categories of a segment, or nil if the segment is unknown.
func Categories(segment string) []string {
	for _, s := range segments {
		if s.Name == segment {
			return s.Categories
		}
	}
	return nil
}

// LookupBrand finds a brand by name.
func LookupBrand(name string) (Brand, bool) {
	for _, b := range brands {
		if b.Name == name {
			return b, true
		}
	}
	return Brand{}, false
}

// HasCity reports whether city belongs to province.
func HasCity(province, city string) bool {
	return slices.Contains(Cities(province), city)
}

// HasCategory reports whether category is sold in segment.
func HasCategory(segment, category string) bool {
	return slices.Contains(Categories(segment), category)
}

// IsRating reports whether label is one of the rating levels.
func IsRating(label string) bool {
	return slices.Contains(ratings.Values(), label)
}

// IsNegativeRating reports whether a rating makes a return possible.
func IsNegativeRating(label string) bool {
	return label == Poor || label == Unsatisfactory
}
