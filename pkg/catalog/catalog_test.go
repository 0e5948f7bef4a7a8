package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	provinces := Locations()
	require.Len(t, provinces, 7)

	for _, p := range provinces {
		assert.GreaterOrEqual(t, len(p.Cities), 3, p.Name)
		assert.LessOrEqual(t, len(p.Cities), 5, p.Name)
	}

	assert.True(t, HasCity("Cavite", "Dasmariñas"))
	assert.False(t, HasCity("Cavite", "Makati"))
	assert.Nil(t, Cities("Cebu"))
}

func TestBrandSegmentMixesSumToOne(t *testing.T) {
	require.Len(t, Brands(), 7)

	for _, b := range Brands() {
		require.Equal(t, 3, b.Segments.Len(), b.Name)
		assert.Equal(t, []string{Men, Women, Kids}, b.Segments.Values(), b.Name)

		sum := 0.0
		for i := 0; i < b.Segments.Len(); i++ {
			sum += b.Segments.Probability(i)
		}
		assert.InDelta(t, 1.0, sum, 1e-9, b.Name)
	}

	hm, ok := LookupBrand("H&M")
	require.True(t, ok)
	assert.InDelta(t, 0.1, hm.Segments.Probability(2), 1e-9)

	_, ok = LookupBrand("Zara")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories(Men), 9)
	assert.Len(t, Categories(Women), 9)
	assert.Len(t, Categories(Kids), 12)
	assert.Nil(t, Categories("Pets"))

	assert.True(t, HasCategory(Women, "Skirts"))
	assert.False(t, HasCategory(Men, "Skirts"))
	assert.True(t, HasCategory(Kids, "Sleepwear"))
}

func TestRatings(t *testing.T) {
	r := Ratings()
	assert.Equal(t, []string{Poor, Unsatisfactory, Satisfactory, VerySatisfactory, Outstanding}, r.Values())
	assert.InDelta(t, 0.39, r.Probability(3), 1e-9)

	assert.True(t, IsRating("Very Satisfactory"))
	assert.False(t, IsRating("Excellent"))

	assert.True(t, IsNegativeRating(Poor))
	assert.True(t, IsNegativeRating(Unsatisfactory))
	assert.False(t, IsNegativeRating(Satisfactory))
}
