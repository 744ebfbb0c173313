// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package combo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/combo"
)

func collect(t *testing.T, it *combo.Iter[string]) []string {
	t.Helper()
	var ret []string
	for {
		c, ok := it.Next()
		if !ok {
			return ret
		}
		ret = append(ret, strings.Join(c, " "))
	}
}

func TestJoinProduct(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		input    [][]string
		expected []string
	}{
		"two-by-two": {
			input: [][]string{
				{"hey", "ok"},
				{"speaker", "sound system"},
			},
			expected: []string{
				"hey speaker",
				"hey sound system",
				"ok speaker",
				"ok sound system",
			},
		},
		"single-component": {
			input:    [][]string{{"a", "b", "c"}},
			expected: []string{"a", "b", "c"},
		},
		"no-components": {
			input:    nil,
			expected: []string{""},
		},
		"empty-component": {
			input:    [][]string{{"a"}, {}},
			expected: nil,
		},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			it, err := combo.Join(tc.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, collect(t, it))
		})
	}
}

func TestJoinSampleWithoutReplacement(t *testing.T) {
	t.Parallel()
	input := [][]string{
		{"a", "b", "c"},
		{"x", "y", "z"},
	}

	it, err := combo.Join(input, &combo.Options{MaxSampleSize: 5, Seed: 42})
	require.NoError(t, err)
	got := collect(t, it)
	require.Len(t, got, 5)

	// Distinct combinations.
	seen := make(map[string]struct{})
	for _, c := range got {
		_, dup := seen[c]
		assert.False(t, dup, "duplicate combination %q", c)
		seen[c] = struct{}{}
	}

	// Oversized samples cap at the product size.
	it, err = combo.Join(input, &combo.Options{MaxSampleSize: 100, Seed: 42})
	require.NoError(t, err)
	assert.Len(t, collect(t, it), 9)
}

func TestJoinSampleWithReplacement(t *testing.T) {
	t.Parallel()
	input := [][]string{
		{"a"},
		{"x"},
	}

	// With replacement, the sample size is not capped at the product size.
	it, err := combo.Join(input, &combo.Options{MaxSampleSize: 4, WithReplacement: true, Seed: 7})
	require.NoError(t, err)
	got := collect(t, it)
	assert.Equal(t, []string{"a x", "a x", "a x", "a x"}, got)
}

func TestJoinSampleDeterministic(t *testing.T) {
	t.Parallel()
	input := [][]string{
		{"a", "b", "c", "d"},
		{"x", "y", "z"},
		{"1", "2"},
	}
	for _, withReplacement := range []bool{false, true} {
		opts := &combo.Options{MaxSampleSize: 6, WithReplacement: withReplacement, Seed: 1234}
		itA, err := combo.Join(input, opts)
		require.NoError(t, err)
		itB, err := combo.Join(input, opts)
		require.NoError(t, err)
		assert.Equal(t, collect(t, itA), collect(t, itB))
	}
}

func TestJoinBadOptions(t *testing.T) {
	t.Parallel()
	for _, size := range []int{0, -3} {
		_, err := combo.Join([][]string{{"a"}}, &combo.Options{MaxSampleSize: size})
		assert.Error(t, err)
	}
}
