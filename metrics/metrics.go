package metrics

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/TFMV/salesgen/pkg/sales"
)

// -----------------------------
// Domain Types
// -----------------------------

// Count is one value of a categorical column and its frequency.
type Count struct {
	Value string  `json:"value"`
	Rows  int     `json:"rows"`
	Share float64 `json:"share"`
}

// Distribution lists the frequencies of a column, most frequent first.
type Distribution []Count

// Lookup returns the count for value, or false if it never occurs.
func (d Distribution) Lookup(value string) (Count, bool) {
	for _, c := range d {
		if c.Value == value {
			return c, true
		}
	}
	return Count{}, false
}

// RangeStat summarizes an integer column.
type RangeStat struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// Summary aggregates a generated dataset.
type Summary struct {
	Rows       int       `json:"rows"`
	FirstDate  time.Time `json:"first_date"`
	LastDate   time.Time `json:"last_date"`
	Revenue    int64     `json:"revenue"`
	Units      int64     `json:"units"`
	Returned   int       `json:"returned"`
	ReturnRate float64   `json:"return_rate"`

	Age      RangeStat `json:"age"`
	Price    RangeStat `json:"price"`
	Quantity RangeStat `json:"quantity"`

	Years     Distribution `json:"years"`
	Genders   Distribution `json:"genders"`
	Provinces Distribution `json:"provinces"`
	Brands    Distribution `json:"brands"`
	Segments  Distribution `json:"segments"`
	Ratings   Distribution `json:"ratings"`
}

// -----------------------------
// Aggregation
// -----------------------------

type counter struct {
	counts map[string]int
}

func newCounter() *counter { return &counter{counts: make(map[string]int)} }

func (c *counter) add(v string) { c.counts[v]++ }

func (c *counter) distribution(total int) Distribution {
	d := make(Distribution, 0, len(c.counts))
	for v, n := range c.counts {
		d = append(d, Count{Value: v, Rows: n, Share: float64(n) / float64(total)})
	}
	slices.SortFunc(d, func(a, b Count) int {
		if c := cmp.Compare(b.Rows, a.Rows); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return d
}

type rangeAcc struct {
	min, max int
	sum      int64
}

func (r *rangeAcc) add(i, v int) {
	if i == 0 || v < r.min {
		r.min = v
	}
	if i == 0 || v > r.max {
		r.max = v
	}
	r.sum += int64(v)
}

func (r *rangeAcc) stat(n int) RangeStat {
	if n == 0 {
		return RangeStat{}
	}
	return RangeStat{Min: r.min, Max: r.max, Mean: float64(r.sum) / float64(n)}
}

// Summarize aggregates txs in a single pass.
func Summarize(txs []sales.Transaction) Summary {
	s := Summary{Rows: len(txs)}

	years, genders, provinces := newCounter(), newCounter(), newCounter()
	brands, segments, ratings := newCounter(), newCounter(), newCounter()
	var age, price, qty rangeAcc

	for i, tx := range txs {
		if i == 0 || tx.Date.Before(s.FirstDate) {
			s.FirstDate = tx.Date
		}
		if i == 0 || tx.Date.After(s.LastDate) {
			s.LastDate = tx.Date
		}
		s.Revenue += int64(tx.Total)
		s.Units += int64(tx.Quantity)
		if tx.Returned == sales.Yes {
			s.Returned++
		}

		age.add(i, tx.Age)
		price.add(i, tx.Price)
		qty.add(i, tx.Quantity)

		years.add(strconv.Itoa(tx.Date.Year()))
		genders.add(tx.Gender)
		provinces.add(tx.Province)
		brands.add(tx.Brand)
		segments.add(tx.Segment)
		ratings.add(tx.Rating)
	}

	if s.Rows > 0 {
		s.ReturnRate = float64(s.Returned) / float64(s.Rows)
	}
	s.Age = age.stat(s.Rows)
	s.Price = price.stat(s.Rows)
	s.Quantity = qty.stat(s.Rows)

	s.Years = years.distribution(s.Rows)
	s.Genders = genders.distribution(s.Rows)
	s.Provinces = provinces.distribution(s.Rows)
	s.Brands = brands.distribution(s.Rows)
	s.Segments = segments.distribution(s.Rows)
	s.Ratings = ratings.distribution(s.Rows)

	return s
}

// Diff lists the fields of s that differ from baseline, as "field: got X,
// want Y" lines. It returns nil when the summaries agree.
func (s Summary) Diff(baseline Summary) []string {
	var diffs []string
	add := func(field string, got, want any) {
		diffs = append(diffs, fmt.Sprintf("%s: got %v, want %v", field, got, want))
	}

	if s.Rows != baseline.Rows {
		add("rows", s.Rows, baseline.Rows)
	}
	if !s.FirstDate.Equal(baseline.FirstDate) {
		add("first_date", s.FirstDate.Format(time.DateOnly), baseline.FirstDate.Format(time.DateOnly))
	}
	if !s.LastDate.Equal(baseline.LastDate) {
		add("last_date", s.LastDate.Format(time.DateOnly), baseline.LastDate.Format(time.DateOnly))
	}
	if s.Revenue != baseline.Revenue {
		add("revenue", s.Revenue, baseline.Revenue)
	}
	if s.Units != baseline.Units {
		add("units", s.Units, baseline.Units)
	}
	if s.Returned != baseline.Returned {
		add("returned", s.Returned, baseline.Returned)
	}
	if s.Age != baseline.Age {
		add("age", s.Age, baseline.Age)
	}
	if s.Price != baseline.Price {
		add("price", s.Price, baseline.Price)
	}
	if s.Quantity != baseline.Quantity {
		add("quantity", s.Quantity, baseline.Quantity)
	}

	for _, d := range []struct {
		field     string
		got, want Distribution
	}{
		{"years", s.Years, baseline.Years},
		{"genders", s.Genders, baseline.Genders},
		{"provinces", s.Provinces, baseline.Provinces},
		{"brands", s.Brands, baseline.Brands},
		{"segments", s.Segments, baseline.Segments},
		{"ratings", s.Ratings, baseline.Ratings},
	} {
		// Shares and the return rate follow from the counts.
		if !slices.EqualFunc(d.got, d.want, func(a, b Count) bool {
			return a.Value == b.Value && a.Rows == b.Rows
		}) {
			add(d.field, d.got.counts(), d.want.counts())
		}
	}
	return diffs
}

func (d Distribution) counts() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = c.Value + "=" + strconv.Itoa(c.Rows)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// -----------------------------
// Metrics Storage
// -----------------------------

// Store abstracts summary storage.
type Store interface {
	Save(s Summary) error
	SaveWithContext(ctx context.Context, s Summary) error
}

// JSONStore stores summaries as indented JSON. Without a FilePath it writes
// to Output, or stdout when Output is nil.
type JSONStore struct {
	FilePath string
	Output   io.Writer
}

func (j *JSONStore) Save(s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if j.FilePath != "" {
		return os.WriteFile(j.FilePath, data, 0644)
	}
	out := j.Output
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func (j *JSONStore) SaveWithContext(ctx context.Context, s Summary) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return j.Save(s)
	}
}
