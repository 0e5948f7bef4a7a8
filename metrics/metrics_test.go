package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(year int, rating, returned string, price, qty int) sales.Transaction {
	return sales.Transaction{
		Date:     time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Gender:   "Female",
		Age:      20 + qty,
		Province: "Cavite",
		Brand:    "Nike",
		Segment:  "Women",
		Price:    price,
		Quantity: qty,
		Total:    price * qty,
		Rating:   rating,
		Returned: returned,
	}
}

func TestSummarize(t *testing.T) {
	txs := []sales.Transaction{
		tx(2021, "Poor", sales.Yes, 1000, 2),
		tx(2023, "Outstanding", sales.No, 1200, 1),
		tx(2021, "Poor", sales.No, 900, 3),
		tx(2020, "Satisfactory", sales.No, 1500, 4),
	}

	s := Summarize(txs)
	assert.Equal(t, 4, s.Rows)
	assert.EqualValues(t, 2000+1200+2700+6000, s.Revenue)
	assert.EqualValues(t, 10, s.Units)
	assert.Equal(t, 1, s.Returned)
	assert.InDelta(t, 0.25, s.ReturnRate, 1e-9)
	assert.Equal(t, 2020, s.FirstDate.Year())
	assert.Equal(t, 2023, s.LastDate.Year())

	assert.Equal(t, RangeStat{Min: 900, Max: 1500, Mean: 1150}, s.Price)
	assert.Equal(t, RangeStat{Min: 1, Max: 4, Mean: 2.5}, s.Quantity)

	require.Len(t, s.Years, 3)
	assert.Equal(t, Count{Value: "2021", Rows: 2, Share: 0.5}, s.Years[0])
	assert.Equal(t, "2020", s.Years[1].Value)

	poor, ok := s.Ratings.Lookup("Poor")
	require.True(t, ok)
	assert.Equal(t, 2, poor.Rows)
	_, ok = s.Ratings.Lookup("Unsatisfactory")
	assert.False(t, ok)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Rows)
	assert.Zero(t, s.ReturnRate)
	assert.Empty(t, s.Brands)
	assert.Equal(t, RangeStat{}, s.Age)
}

func TestSummarizeGeneratedDataset(t *testing.T) {
	g := sales.NewGenerator(sales.Options{Seed: sales.DefaultSeed})
	txs, err := g.Generate(context.Background(), 5000)
	require.NoError(t, err)

	s := Summarize(txs)
	assert.Equal(t, 5000, s.Rows)
	assert.GreaterOrEqual(t, s.Age.Min, 18)
	assert.LessOrEqual(t, s.Age.Max, 50)
	assert.GreaterOrEqual(t, s.Price.Min, 900)
	assert.LessOrEqual(t, s.Price.Max, 1500)
	assert.Len(t, s.Segments, 3)
	assert.Len(t, s.Brands, 7)

	// returns only happen on the 9% of poorly rated sales
	assert.Less(t, s.ReturnRate, 0.1)
	assert.Greater(t, s.ReturnRate, 0.0)

	female, ok := s.Genders.Lookup("Female")
	require.True(t, ok)
	assert.InDelta(t, 0.68, female.Share, 0.03)
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	store := &JSONStore{FilePath: path}

	s := Summarize([]sales.Transaction{tx(2022, "Poor", sales.Yes, 1000, 1)})
	require.NoError(t, store.Save(s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Summary
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 1, loaded.Rows)
	assert.Equal(t, 1, loaded.Returned)
}

func TestJSONStoreToWriter(t *testing.T) {
	var buf bytes.Buffer
	store := &JSONStore{Output: &buf}
	require.NoError(t, store.Save(Summary{Rows: 3}))
	assert.Contains(t, buf.String(), `"rows": 3`)
}

func TestJSONStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &JSONStore{Output: &bytes.Buffer{}}
	assert.ErrorIs(t, store.SaveWithContext(ctx, Summary{}), context.Canceled)
}

func TestSummaryDiff(t *testing.T) {
	base := Summarize([]sales.Transaction{
		tx(2022, "Poor", sales.Yes, 1000, 1),
		tx(2023, "Good", sales.No, 2000, 2),
	})

	data, err := json.Marshal(base)
	require.NoError(t, err)
	var loaded Summary
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Empty(t, loaded.Diff(base))

	other := Summarize([]sales.Transaction{
		tx(2022, "Poor", sales.Yes, 1000, 1),
		tx(2022, "Good", sales.No, 2000, 3),
	})
	diffs := other.Diff(base)
	assert.Contains(t, diffs, "units: got 4, want 3")
	assert.Contains(t, diffs, "years: got [2022=2], want [2022=1 2023=1]")
	assert.NotContains(t, diffs, "rows: got 2, want 2")
}
