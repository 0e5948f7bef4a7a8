package readers

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TFMV/salesgen/pkg/core"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/pkg/writers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, n int) (string, []sales.Transaction) {
	t.Helper()
	g := sales.NewGenerator(sales.Options{
		Seed: sales.DefaultSeed,
		Now:  func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) },
	})
	txs, err := g.Generate(context.Background(), n)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "product_sales_data.csv")
	w, err := writers.NewCSVWriter(core.WriterConfig{Path: path})
	require.NoError(t, err)
	rec := sales.NewRecord(nil, txs)
	defer rec.Release()
	require.NoError(t, w.Write(context.Background(), rec))
	require.NoError(t, w.Close())

	return path, txs
}

func TestCSVReaderRoundTrip(t *testing.T) {
	path, txs := writeDataset(t, 250)

	r, err := NewCSVReader(core.ReaderConfig{Path: path, Schema: sales.Schema, BatchSize: 64})
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 250, rec.NumRows())
	got, err := sales.FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}

func TestCSVReaderBatches(t *testing.T) {
	path, _ := writeDataset(t, 25)

	r, err := NewCSVReader(core.ReaderConfig{Path: path, Schema: sales.Schema, BatchSize: 10})
	require.NoError(t, err)
	defer r.Close()

	var sizes []int64
	for {
		rec, err := r.Read(context.Background())
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, rec.NumRows())
		rec.Release()
	}
	assert.Equal(t, []int64{10, 10, 5}, sizes)
}

func TestCSVReaderHeaderOnly(t *testing.T) {
	path, _ := writeDataset(t, 0)

	r, err := NewCSVReader(core.ReaderConfig{Path: path, Schema: sales.Schema})
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	defer rec.Release()
	assert.EqualValues(t, 0, rec.NumRows())
	assert.EqualValues(t, 16, rec.NumCols())
}

func TestCSVReaderHeaderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,a\n"), 0o644))

	_, err := NewCSVReader(core.ReaderConfig{Path: path, Schema: sales.Schema})
	assert.ErrorIs(t, err, ErrHeaderMismatch)
}

func TestCSVReaderBadValue(t *testing.T) {
	path, _ := writeDataset(t, 3)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	cells := strings.Split(lines[1], ",")
	cells[5] = "old" // Age
	lines[1] = strings.Join(cells, ",")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	r, err := NewCSVReader(core.ReaderConfig{Path: path, Schema: sales.Schema})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadAll(context.Background())
	assert.Error(t, err)
}

func TestCSVReaderInfersWithoutSchema(t *testing.T) {
	path, _ := writeDataset(t, 5)

	r, err := NewCSVReader(core.ReaderConfig{Path: path})
	require.NoError(t, err)
	defer r.Close()
	assert.Nil(t, r.Schema())

	rec, err := r.Read(context.Background())
	require.NoError(t, err)
	defer rec.Release()
	require.NotNil(t, r.Schema())
	assert.Equal(t, sales.Columns()[0], r.Schema().Field(0).Name)
}

func TestCSVReaderMissingFile(t *testing.T) {
	_, err := NewCSVReader(core.ReaderConfig{Path: filepath.Join(t.TempDir(), "nope.csv")})
	assert.Error(t, err)

	_, err = NewCSVReader(core.ReaderConfig{})
	assert.Error(t, err)
}
