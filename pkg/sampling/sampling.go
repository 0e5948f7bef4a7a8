// Package sampling provides the random draws used to synthesize dataset fields.
package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// ErrEmptyTable is returned when a weighted table has no entries.
var ErrEmptyTable = errors.New("weighted table has no entries")

// Entry pairs a value with its selection weight.
type Entry[T any] struct {
	Value  T
	Weight float64
}

// Weighted draws values from a finite set using cumulative-weight inversion.
type Weighted[T any] struct {
	values     []T
	cumulative []float64
	total      float64
}

// NewWeighted builds a sampler from the given entries. Weights need not sum
// to 1; they are normalized by their total.
func NewWeighted[T any](entries ...Entry[T]) (*Weighted[T], error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	w := &Weighted[T]{
		values:     make([]T, 0, len(entries)),
		cumulative: make([]float64, 0, len(entries)),
	}
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("entry %d has negative weight %v", i, e.Weight)
		}
		w.total += e.Weight
		w.values = append(w.values, e.Value)
		w.cumulative = append(w.cumulative, w.total)
	}
	if w.total <= 0 {
		return nil, fmt.Errorf("weights sum to %v, must be positive", w.total)
	}

	return w, nil
}

// MustWeighted is like NewWeighted but panics on error. It is meant for
// package-level tables built from literals.
func MustWeighted[T any](entries ...Entry[T]) *Weighted[T] {
	w, err := NewWeighted(entries...)
	if err != nil {
		panic(err)
	}
	return w
}

// Pick draws one value.
func (w *Weighted[T]) Pick(r *rand.Rand) T {
	u := r.Float64() * w.total
	i := sort.Search(len(w.cumulative), func(i int) bool { return u < w.cumulative[i] })
	if i == len(w.cumulative) {
		// u landed on the total through rounding
		i--
	}
	return w.values[i]
}

// Values returns the candidate values in table order.
func (w *Weighted[T]) Values() []T {
	return append([]T(nil), w.values...)
}

// Probability returns the normalized weight of the entry at index i.
func (w *Weighted[T]) Probability(i int) float64 {
	prev := 0.0
	if i > 0 {
		prev = w.cumulative[i-1]
	}
	return (w.cumulative[i] - prev) / w.total
}

// Len returns the number of entries.
func (w *Weighted[T]) Len() int {
	return len(w.values)
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Lo int
	Hi int
}

// Draw returns an integer uniformly distributed in [Lo, Hi].
func (ir IntRange) Draw(r *rand.Rand) int {
	return ir.Lo + r.IntN(ir.Hi-ir.Lo+1)
}

// Contains reports whether v lies within the range.
func (ir IntRange) Contains(v int) bool {
	return v >= ir.Lo && v <= ir.Hi
}

func (ir IntRange) String() string {
	return fmt.Sprintf("%d-%d", ir.Lo, ir.Hi)
}

// Uniform picks one element of items with equal probability.
// items must not be empty.
func Uniform[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}
