// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package generate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/combo"
	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/testutil"
)

func parseDef(t *testing.T, doc string) *patterndef.Def {
	t.Helper()
	def, err := patterndef.Parse([]byte(doc))
	require.NoError(t, err)
	return def
}

func tokenSeqs(expansions []generate.Expansion) []string {
	ret := make([]string, len(expansions))
	for i, exp := range expansions {
		ret[i] = strings.Join(exp.Tokens, " ")
	}
	return ret
}

func TestExpandRanges(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
token_patterns:
  - static:
      - A: [[[a]]]
      - B: [[[b]]]
utterance_patterns:
  - [A, 2]
  - [A, 1-3, B]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"A A",
		"A B",
		"A A B",
		"A A A B",
	}, tokenSeqs(expansions))
}

func TestExpandGroups(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
token_patterns:
  - static:
      - WAKE: [[[hey]]]
      - PLAY: [[[play]]]
      - SONG: [[[song]]]
groups:
  - PLAY_SONG: [PLAY, SONG]
utterance_patterns:
  - [WAKE, PLAY_SONG]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	require.Len(t, expansions, 1)
	assert.Equal(t, []string{"WAKE", "PLAY", "SONG"}, expansions[0].Tokens)
	testutil.AssertEqual(t, []generate.Group{
		{Name: "None", TokenCount: 1},
		{Name: "PLAY_SONG", TokenCount: 2},
	}, expansions[0].Groups, "groups")
}

func TestExpandGroupWithRange(t *testing.T) {
	t.Parallel()
	// A range inside a group fragment multiplies the group in to one
	// variant per count, and the layout's TokenCount tracks it.
	def := parseDef(t, `
token_patterns:
  - static:
      - A: [[[a]]]
      - B: [[[b]]]
groups:
  - G: [A, 1-2, B]
utterance_patterns:
  - [G]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A B", "A A B"}, tokenSeqs(expansions))
	testutil.AssertEqual(t, []generate.Group{{Name: "G", TokenCount: 2}}, expansions[0].Groups, "groups[0]")
	testutil.AssertEqual(t, []generate.Group{{Name: "G", TokenCount: 3}}, expansions[1].Groups, "groups[1]")
}

func TestExpandNestedGroups(t *testing.T) {
	t.Parallel()
	// A group referenced from inside another group's fragment flattens in
	// to the outer group's span.
	def := parseDef(t, `
token_patterns:
  - static:
      - A: [[[a]]]
      - B: [[[b]]]
      - C: [[[c]]]
groups:
  - INNER: [B, C]
  - OUTER: [A, INNER]
utterance_patterns:
  - [OUTER]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	require.Len(t, expansions, 1)
	assert.Equal(t, []string{"A", "B", "C"}, expansions[0].Tokens)
	testutil.AssertEqual(t, []generate.Group{
		{Name: "OUTER", TokenCount: 3},
	}, expansions[0].Groups, "groups")
}

func TestExpandBaseTokensAndCombo(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
base_tokens:
  - GREETS: [hey, ok]
token_patterns:
  - static:
      - WAKE:
          - - GREETS
            - [speaker]
          - - [yo]
utterance_patterns:
  - [WAKE]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	require.Len(t, expansions, 1)
	assert.Equal(t, [][]string{
		{"hey speaker", "ok speaker", "yo"},
	}, expansions[0].Combo)
	assert.Equal(t, uint64(3), expansions[0].Size())
}

func TestExpandDynamic(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
token_patterns:
  - dynamic:
      - ARTIST
utterance_patterns:
  - [ARTIST]
`)

	// Declared but not supplied.
	_, err := generate.Expand(def, nil)
	assert.Error(t, err)

	// Supplied patterns may not reference base tokens.
	_, err = generate.Expand(def, map[string][]patterndef.TokenPattern{
		"ARTIST": {{{BaseToken: "NOPE"}}},
	})
	assert.Error(t, err)

	expansions, err := generate.Expand(def, map[string][]patterndef.TokenPattern{
		"ARTIST": {{{Phrases: []string{"the beatles", "kanye west"}}}},
	})
	require.NoError(t, err)
	require.Len(t, expansions, 1)
	assert.Equal(t, [][]string{{"the beatles", "kanye west"}}, expansions[0].Combo)
}

func TestUtterances(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
token_patterns:
  - static:
      - WAKE:
          - - [hey, ok]
            - [speaker]
      - PLAY: [[[play]]]
utterance_patterns:
  - [WAKE, PLAY]
`)
	expansions, err := generate.Expand(def, nil)
	require.NoError(t, err)
	require.Len(t, expansions, 1)

	it, err := generate.Utterances(expansions[0], nil, nil)
	require.NoError(t, err)

	var got []generate.Utterance
	for {
		utterance, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, utterance)
	}
	testutil.AssertEqual(t, []generate.Utterance{
		{Text: "hey speaker play", Tokens: []string{"[WAKE(hey speaker)]", "[PLAY(play)]"}},
		{Text: "ok speaker play", Tokens: []string{"[WAKE(ok speaker)]", "[PLAY(play)]"}},
	}, got, "utterances")
}

func TestUtterancesHandlers(t *testing.T) {
	t.Parallel()
	exp := generate.Expansion{
		Tokens: []string{"A", "B"},
		Combo:  [][]string{{"a"}, {"b"}},
		Groups: []generate.Group{{Name: "None", TokenCount: 1}, {Name: "None", TokenCount: 1}},
	}

	handlers := generate.HandlerMap{
		"A": func(token, phrase string) (string, error) {
			return strings.ToUpper(phrase), nil
		},
		generate.DefaultKey: func(token, phrase string) (string, error) {
			return token + ":" + phrase, nil
		},
	}
	it, err := generate.Utterances(exp, handlers, nil)
	require.NoError(t, err)
	utterance, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a b", utterance.Text)
	assert.Equal(t, []string{"A", "B:b"}, utterance.Tokens)
}

func TestUtterancesSampled(t *testing.T) {
	t.Parallel()
	exp := generate.Expansion{
		Tokens: []string{"A", "B"},
		Combo: [][]string{
			{"a1", "a2", "a3"},
			{"b1", "b2", "b3"},
		},
		Groups: []generate.Group{{Name: "None", TokenCount: 1}, {Name: "None", TokenCount: 1}},
	}
	it, err := generate.Utterances(exp, nil, &combo.Options{MaxSampleSize: 4, Seed: 99})
	require.NoError(t, err)
	count := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}
