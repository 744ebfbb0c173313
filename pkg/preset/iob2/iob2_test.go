// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package iob2_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
	"github.com/putput/putput/pkg/preset/iob2"
)

func TestHandler(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		token    string
		phrase   string
		expected string
	}{
		"one-word":    {token: "PLAY", phrase: "play", expected: "B-PLAY"},
		"multi-word":  {token: "WAKE", phrase: "hey sound system", expected: "B-WAKE I-WAKE I-WAKE"},
		"extra-space": {token: "A", phrase: " x  y ", expected: "B-A I-A"},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := iob2.Handler(tc.token, tc.phrase)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := iob2.Handler("A", "   ")
	assert.Error(t, err)
}

func TestPipelineWithPreset(t *testing.T) {
	t.Parallel()
	def, err := patterndef.Parse([]byte(`
token_patterns:
  - static:
      - WAKE:
          - - [hey there]
      - PLAY:
          - - [play]
      - SONG:
          - - [hey jude]
groups:
  - PLAY_SONG: [PLAY, SONG]
utterance_patterns:
  - [WAKE, PLAY_SONG]
`))
	require.NoError(t, err)

	opts := append(iob2.Options(), pipeline.WithDynamicTokenPatterns(nil))
	results, errs := pipeline.New(def, opts...).Flow(context.Background())
	var got []pipeline.Result
	for res := range results {
		got = append(got, res)
	}
	require.NoError(t, <-errs)
	require.Len(t, got, 1)

	assert.Equal(t, "hey there play hey jude", got[0].Utterance)
	assert.Equal(t, []string{"B-WAKE I-WAKE", "B-PLAY", "B-SONG I-SONG"}, got[0].Tokens)

	// The preset's combo hook folds the group layout in to per-word tags,
	// so every consumer of the result stream sees them.
	assert.Equal(t, []string{"O", "O", "B-PLAY_SONG", "I-PLAY_SONG", "I-PLAY_SONG"}, got[0].GroupTags)
}

func TestGroupTagsMismatch(t *testing.T) {
	t.Parallel()
	_, err := iob2.GroupTags(pipeline.Result{
		Tokens: []string{"B-A"},
		Groups: []generate.Group{{Name: "None", TokenCount: 2}},
	})
	assert.Error(t, err)
}
