// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package combo deals with iterating combinations drawn from a sequence of
// component slices: either the full cartesian product, or a random sample of
// it.
//
// The product is never materialized.  Full iteration walks an odometer over
// the component indices; sampling draws flat indices in to the product space
// and unravels them, so the product may be astronomically large as long as the
// requested sample is not.
package combo

import (
	"fmt"
	"math"
	"math/rand"
)

// Options requests a random sample of the product instead of the full
// product.
type Options struct {
	// MaxSampleSize is how many combinations to emit; it must be > 0.
	// Without replacement, it is capped at the product size.
	MaxSampleSize int

	// WithReplacement selects independent draws; the same combination may
	// be emitted more than once.
	WithReplacement bool

	// Seed seeds the random source, so that a fixed seed gives a fixed
	// sample.
	Seed int64
}

func (opts *Options) validate() error {
	if opts.MaxSampleSize <= 0 {
		return fmt.Errorf("combo: MaxSampleSize must be > 0: %d", opts.MaxSampleSize)
	}
	return nil
}

// An Iter lazily yields combinations.  It is not safe for concurrent use.
type Iter[T any] struct {
	next func() ([]T, bool)
}

// Next returns the next combination, or ok=false when the iterator is
// exhausted.  The returned slice is freshly allocated and may be retained.
func (it *Iter[T]) Next() ([]T, bool) {
	return it.next()
}

// Join iterates combinations that take one element from each component.  With
// nil opts it yields the full cartesian product in odometer order (rightmost
// component varies fastest); with non-nil opts it yields a random sample per
// Options.
//
// A combo with zero components has exactly one (empty) combination; a combo
// with any empty component has none.
func Join[T any](components [][]T, opts *Options) (*Iter[T], error) {
	if opts == nil {
		return productIter(components), nil
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(opts.Seed))
	if opts.WithReplacement {
		return replacementIter(components, opts.MaxSampleSize, rnd), nil
	}
	return sampleIter(components, opts.MaxSampleSize, rnd), nil
}

func pick[T any](components [][]T, indices []int) []T {
	ret := make([]T, len(components))
	for i, component := range components {
		ret[i] = component[indices[i]]
	}
	return ret
}

func productIter[T any](components [][]T) *Iter[T] {
	for _, component := range components {
		if len(component) == 0 {
			return &Iter[T]{next: func() ([]T, bool) { return nil, false }}
		}
	}
	indices := make([]int, len(components))
	done := false
	return &Iter[T]{next: func() ([]T, bool) {
		if done {
			return nil, false
		}
		ret := pick(components, indices)
		// Advance the odometer; when the leftmost digit rolls over,
		// we're done.
		done = true
		for i := len(indices) - 1; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(components[i]) {
				done = false
				break
			}
			indices[i] = 0
		}
		return ret, true
	}}
}

func replacementIter[T any](components [][]T, n int, rnd *rand.Rand) *Iter[T] {
	for _, component := range components {
		if len(component) == 0 {
			return &Iter[T]{next: func() ([]T, bool) { return nil, false }}
		}
	}
	emitted := 0
	return &Iter[T]{next: func() ([]T, bool) {
		if emitted >= n {
			return nil, false
		}
		emitted++
		indices := make([]int, len(components))
		for i, component := range components {
			indices[i] = rnd.Intn(len(component))
		}
		return pick(components, indices), true
	}}
}

// productSize returns the number of combinations, saturating at
// math.MaxUint64.
func productSize[T any](components [][]T) (size uint64, saturated bool) {
	size = 1
	for _, component := range components {
		n := uint64(len(component))
		if n == 0 {
			return 0, false
		}
		if size > math.MaxUint64/n {
			return math.MaxUint64, true
		}
		size *= n
	}
	return size, false
}

// unravel converts a flat index in to the product space to per-component
// indices, rightmost component varying fastest.
func unravel[T any](components [][]T, flat uint64) []int {
	indices := make([]int, len(components))
	for i := len(components) - 1; i >= 0; i-- {
		n := uint64(len(components[i]))
		indices[i] = int(flat % n)
		flat /= n
	}
	return indices
}

func sampleIter[T any](components [][]T, n int, rnd *rand.Rand) *Iter[T] {
	total, saturated := productSize(components)
	if total == 0 {
		return &Iter[T]{next: func() ([]T, bool) { return nil, false }}
	}
	want := uint64(n)
	if !saturated && want > total {
		want = total
	}
	seen := make(map[uint64]struct{}, want)
	var emitted uint64
	return &Iter[T]{next: func() ([]T, bool) {
		if emitted >= want {
			return nil, false
		}
		var flat uint64
		for {
			flat = rnd.Uint64()
			if !saturated {
				flat %= total
			}
			if _, dup := seen[flat]; !dup {
				break
			}
		}
		seen[flat] = struct{}{}
		emitted++
		return pick(components, unravel(components, flat)), true
	}}
}
