package sales

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/TFMV/salesgen/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestGenerator(pricing PricingMode) *Generator {
	return NewGenerator(Options{
		Seed:    DefaultSeed,
		Pricing: pricing,
		Now:     fixedClock(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)),
	})
}

func TestGenerateInvariants(t *testing.T) {
	g := newTestGenerator(PricingLegacy)
	txs, err := g.Generate(context.Background(), 5000)
	require.NoError(t, err)
	require.Len(t, txs, 5000)

	for i, tx := range txs {
		assert.Regexp(t, idPattern, tx.ID, "row %d", i)
		assert.Equal(t, tx.Price*tx.Quantity, tx.Total, "row %d", i)
		assert.True(t, catalog.HasCity(tx.Province, tx.City), "row %d: %s/%s", i, tx.Province, tx.City)
		assert.True(t, catalog.HasCategory(tx.Segment, tx.Category), "row %d: %s/%s", i, tx.Segment, tx.Category)
		assert.GreaterOrEqual(t, tx.Age, 18)
		assert.LessOrEqual(t, tx.Age, 50)
		assert.GreaterOrEqual(t, tx.Quantity, 1)
		assert.LessOrEqual(t, tx.Quantity, 10)
		assert.Contains(t, []string{"Female", "Male"}, tx.Gender)
		assert.True(t, catalog.IsRating(tx.Rating))
		assert.NotEmpty(t, tx.FirstName)
		assert.NotEmpty(t, tx.LastName)

		if catalog.IsNegativeRating(tx.Rating) {
			assert.Contains(t, []string{Yes, No}, tx.Returned)
		} else {
			assert.Equal(t, No, tx.Returned, "row %d", i)
		}

		year := tx.Date.Year()
		assert.GreaterOrEqual(t, year, 2020)
		assert.LessOrEqual(t, year, 2024)
	}
}

func TestLegacyPricingAlwaysStandardTier(t *testing.T) {
	g := newTestGenerator(PricingLegacy)
	txs, err := g.Generate(context.Background(), 2000)
	require.NoError(t, err)

	for _, tx := range txs {
		assert.True(t, StandardTier.Contains(tx.Price), "price %d for %s", tx.Price, tx.Category)
	}
}

func TestCategoryPricingUsesCategoryTier(t *testing.T) {
	g := newTestGenerator(PricingCategory)
	txs, err := g.Generate(context.Background(), 2000)
	require.NoError(t, err)

	var premium int
	for _, tx := range txs {
		tier := PricingCategory.TierFor(tx.Segment, tx.Category)
		assert.True(t, tier.Contains(tx.Price), "price %d for %s", tx.Price, tx.Category)
		if tier == PremiumTier {
			premium++
		}
	}
	assert.Positive(t, premium)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := newTestGenerator(PricingLegacy).Generate(context.Background(), 300)
	require.NoError(t, err)
	b, err := newTestGenerator(PricingLegacy).Generate(context.Background(), 300)
	require.NoError(t, err)

	assert.Equal(t, a, b)

	c, err := NewGenerator(Options{Seed: 7}).Generate(context.Background(), 300)
	require.NoError(t, err)
	assert.NotEqual(t, a[0].ID, c[0].ID)
}

func TestGenerateZeroRows(t *testing.T) {
	txs, err := newTestGenerator(PricingLegacy).Generate(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(PricingLegacy).Generate(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransactionDateCappedInCurrentYear(t *testing.T) {
	today := time.Date(2023, time.March, 5, 18, 30, 0, 0, time.UTC)
	g := NewGenerator(Options{Seed: 1, Now: fixedClock(today)})

	var sawCurrent bool
	for i := 0; i < 5000; i++ {
		d := g.TransactionDate()
		if d.Year() != 2023 {
			continue
		}
		sawCurrent = true
		assert.False(t, d.After(time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)), d.Format(DateLayout))
	}
	assert.True(t, sawCurrent)
}

func TestTransactionDateCoversWholePastYear(t *testing.T) {
	g := newTestGenerator(PricingLegacy)

	var sawDecember bool
	for i := 0; i < 20000 && !sawDecember; i++ {
		sawDecember = g.TransactionDate().Month() == time.December
	}
	assert.True(t, sawDecember)
}

func TestReturnedOnlyForNegativeRatings(t *testing.T) {
	g := newTestGenerator(PricingLegacy)

	for _, label := range []string{catalog.Satisfactory, catalog.VerySatisfactory, catalog.Outstanding} {
		for i := 0; i < 100; i++ {
			assert.Equal(t, No, g.Returned(label))
		}
	}

	var yes int
	const draws = 20000
	for i := 0; i < draws; i++ {
		if g.Returned(catalog.Poor) == Yes {
			yes++
		}
	}
	assert.InDelta(t, returnProbability, float64(yes)/draws, 0.02)
}

type stubNamer struct{}

func (stubNamer) Next() (string, string) { return "Maria", "Santos" }

func TestCustomNamer(t *testing.T) {
	g := NewGenerator(Options{Seed: 3, Namer: stubNamer{}})
	tx := g.Next()
	assert.Equal(t, "Maria", tx.FirstName)
	assert.Equal(t, "Santos", tx.LastName)
}

func TestParsePricingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PricingMode
		wantErr bool
	}{
		{"legacy", PricingLegacy, false},
		{"category", PricingCategory, false},
		{"", PricingLegacy, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePricingMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, PremiumTier, PricingCategory.TierFor(catalog.Men, "Polos"))
	assert.Equal(t, MidTier, PricingCategory.TierFor(catalog.Women, "Skirts"))
	assert.Equal(t, StandardTier, PricingCategory.TierFor(catalog.Kids, "Sleepwear"))

	// legacy mode never reaches the upper tiers
	assert.Equal(t, StandardTier, PricingLegacy.TierFor(catalog.Men, "Polos"))
	assert.Equal(t, StandardTier, PricingLegacy.TierFor(catalog.Women, "Skirts"))
}

func TestUnknownCatalogKeysPanic(t *testing.T) {
	g := newTestGenerator(PricingLegacy)
	assert.PanicsWithValue(t, `sales: unknown brand "Acme"`, func() { g.Segment("Acme") })
	assert.PanicsWithValue(t, `sales: unknown segment "Teens"`, func() { g.Category("Teens") })
	assert.NotPanics(t, func() { g.Segment("Gap") })
	assert.NotPanics(t, func() { g.Category("Kids") })
}
