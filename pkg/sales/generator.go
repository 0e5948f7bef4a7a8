package sales

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/TFMV/salesgen/pkg/catalog"
	"github.com/TFMV/salesgen/pkg/names"
	"github.com/TFMV/salesgen/pkg/sampling"
)

const (
	// DefaultRecordCount is the number of rows in a standard dataset.
	DefaultRecordCount = 11350

	// DefaultSeed seeds every random source of a run.
	DefaultSeed = 42

	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 10

	// returnProbability is the chance a poorly rated purchase is returned.
	returnProbability = 0.66

	// rows between cancellation checks
	checkEvery = 1024
)

var years = sampling.MustWeighted(
	sampling.Entry[int]{Value: 2020, Weight: 0.10},
	sampling.Entry[int]{Value: 2021, Weight: 0.15},
	sampling.Entry[int]{Value: 2022, Weight: 0.18},
	sampling.Entry[int]{Value: 2023, Weight: 0.35},
	sampling.Entry[int]{Value: 2024, Weight: 0.22},
)

var genders = sampling.MustWeighted(
	sampling.Entry[string]{Value: "Female", Weight: 0.68},
	sampling.Entry[string]{Value: "Male", Weight: 0.32},
)

var ageRanges = sampling.MustWeighted(
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 18, Hi: 25}, Weight: 0.33},
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 26, Hi: 33}, Weight: 0.42},
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 34, Hi: 41}, Weight: 0.18},
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 42, Hi: 50}, Weight: 0.07},
)

var quantityRanges = sampling.MustWeighted(
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 1, Hi: 3}, Weight: 0.68},
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 4, Hi: 7}, Weight: 0.16},
	sampling.Entry[sampling.IntRange]{Value: sampling.IntRange{Lo: 8, Hi: 10}, Weight: 0.16},
)

var returns = sampling.MustWeighted(
	sampling.Entry[string]{Value: Yes, Weight: returnProbability},
	sampling.Entry[string]{Value: No, Weight: 1 - returnProbability},
)

// Options configures a Generator.
type Options struct {
	// Seed seeds the field samplers and the default namer.
	Seed uint64

	// Pricing selects the price tier rule.
	Pricing PricingMode

	// Namer overrides the Philippine name corpus.
	Namer names.Namer

	// Now overrides the clock used to cap dates in the current year.
	Now func() time.Time
}

// Generator draws transactions from the catalog tables.
// A Generator is not safe for concurrent use.
type Generator struct {
	rand    *rand.Rand
	namer   names.Namer
	pricing PricingMode
	now     func() time.Time
}

// NewGenerator creates a Generator. Two generators built from equal options
// produce identical sequences.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		rand:    newRand(opts.Seed),
		namer:   opts.Namer,
		pricing: opts.Pricing,
		now:     opts.Now,
	}
	if g.namer == nil {
		// same seed, separate stream
		g.namer = names.NewPhilippine(newRand(opts.Seed))
	}
	if g.pricing == "" {
		g.pricing = PricingLegacy
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate produces n transactions in generation order.
func (g *Generator) Generate(ctx context.Context, n int) ([]Transaction, error) {
	txs := make([]Transaction, 0, n)
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		txs = append(txs, g.Next())
	}
	return txs, nil
}

// Next samples one transaction. Fields are drawn in column order.
func (g *Generator) Next() Transaction {
	var tx Transaction
	tx.ID = g.TransactionID()
	tx.Date = g.TransactionDate()
	tx.FirstName, tx.LastName = g.CustomerName()
	tx.Gender = g.Gender()
	tx.Age = g.Age()
	tx.Province, tx.City = g.Location()
	tx.Brand = g.Brand()
	tx.Segment = g.Segment(tx.Brand)
	tx.Category = g.Category(tx.Segment)
	tx.Price = g.Price(tx.Segment, tx.Category)
	tx.Quantity = g.Quantity()
	tx.Total = tx.Price * tx.Quantity
	tx.Rating = g.Rating()
	tx.Returned = g.Returned(tx.Rating)
	return tx
}

// TransactionID returns a random 10-character uppercase alphanumeric ID.
func (g *Generator) TransactionID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[g.rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

// TransactionDate picks a weighted year, then a uniform day in it. Days in
// the current year are capped at today.
func (g *Generator) TransactionDate() time.Time {
	year := years.Pick(g.rand)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	if now := g.now(); now.Year() == year {
		end = time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	// YearDay of end is the day count from January 1 inclusive.
	return start.AddDate(0, 0, g.rand.IntN(end.YearDay()))
}

// CustomerName returns a first and last name.
func (g *Generator) CustomerName() (string, string) {
	return g.namer.Next()
}

// Gender returns "Female" or "Male".
func (g *Generator) Gender() string {
	return genders.Pick(g.rand)
}

// Age returns an age between 18 and 50.
func (g *Generator) Age() int {
	return ageRanges.Pick(g.rand).Draw(g.rand)
}

// Location returns a province and one of its cities.
func (g *Generator) Location() (string, string) {
	p := sampling.Uniform(g.rand, catalog.Locations())
	return p.Name, sampling.Uniform(g.rand, p.Cities)
}

// Brand returns a uniformly chosen brand name.
func (g *Generator) Brand() string {
	return sampling.Uniform(g.rand, catalog.Brands()).Name
}

// Segment draws a segment from the brand's segment mix. It panics on a
// brand that is not in the catalog.
func (g *Generator) Segment(brand string) string {
	b, ok := catalog.LookupBrand(brand)
	if !ok {
		panic(fmt.Sprintf("sales: unknown brand %q", brand))
	}
	return b.Segments.Pick(g.rand)
}

// Category returns a uniformly chosen category of the segment. It panics on
// a segment that is not in the catalog.
func (g *Generator) Category(segment string) string {
	categories := catalog.Categories(segment)
	if len(categories) == 0 {
		panic(fmt.Sprintf("sales: unknown segment %q", segment))
	}
	return sampling.Uniform(g.rand, categories)
}

// Price returns a unit price from the tier selected by the pricing mode.
func (g *Generator) Price(segment, category string) int {
	return g.pricing.TierFor(segment, category).Draw(g.rand)
}

// Quantity returns the number of items bought.
func (g *Generator) Quantity() int {
	return quantityRanges.Pick(g.rand).Draw(g.rand)
}

// Rating returns a customer rating label.
func (g *Generator) Rating() string {
	return catalog.Ratings().Pick(g.rand)
}

// Returned decides whether the purchase was returned. Only poorly rated
// purchases can be returned.
func (g *Generator) Returned(rating string) string {
	if !catalog.IsNegativeRating(rating) {
		return No
	}
	return returns.Pick(g.rand)
}
