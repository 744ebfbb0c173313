// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package pipeline_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/combo"
	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
)

const testDoc = `
token_patterns:
  - static:
      - WAKE:
          - - [hey, ok]
      - PLAY:
          - - [play, put on]
utterance_patterns:
  - [WAKE, PLAY]
`

func parseDef(t *testing.T, doc string) *patterndef.Def {
	t.Helper()
	def, err := patterndef.Parse([]byte(doc))
	require.NoError(t, err)
	return def
}

func drain(t *testing.T, p *pipeline.Pipeline) []pipeline.Result {
	t.Helper()
	results, errs := p.Flow(context.Background())
	var ret []pipeline.Result
	for res := range results {
		ret = append(ret, res)
	}
	require.NoError(t, <-errs)
	return ret
}

func utterances(results []pipeline.Result) []string {
	ret := make([]string, len(results))
	for i, res := range results {
		ret[i] = res.Utterance
	}
	return ret
}

func TestFlow(t *testing.T) {
	t.Parallel()
	got := drain(t, pipeline.New(parseDef(t, testDoc)))
	assert.Equal(t, []string{
		"hey play",
		"hey put on",
		"ok play",
		"ok put on",
	}, utterances(got))
	require.NotEmpty(t, got)
	assert.Equal(t, []string{"[WAKE(hey)]", "[PLAY(play)]"}, got[0].Tokens)
	assert.Equal(t, []generate.Group{
		{Name: "None", TokenCount: 1},
		{Name: "None", TokenCount: 1},
	}, got[0].Groups)
}

func TestFlowHooks(t *testing.T) {
	t.Parallel()
	p := pipeline.New(parseDef(t, testDoc),
		pipeline.WithComboHook("WAKE PLAY", func(res pipeline.Result) (pipeline.Result, error) {
			res.Utterance = strings.ToUpper(res.Utterance)
			return res, nil
		}),
		pipeline.WithFinalHook(func(res pipeline.Result) (pipeline.Result, error) {
			res.Utterance += "!"
			return res, nil
		}),
	)
	got := utterances(drain(t, p))
	assert.Equal(t, "HEY PLAY!", got[0])
}

func TestFlowExpansionHook(t *testing.T) {
	t.Parallel()
	p := pipeline.New(parseDef(t, testDoc),
		pipeline.WithExpansionHook(pipeline.DefaultKey,
			func(exp generate.Expansion) (generate.Expansion, error) {
				// Keep only the first phrase of every slot.
				for i, phrases := range exp.Combo {
					exp.Combo[i] = phrases[:1]
				}
				return exp, nil
			}),
	)
	assert.Equal(t, []string{"hey play"}, utterances(drain(t, p)))
}

func TestFlowSampling(t *testing.T) {
	t.Parallel()
	p := pipeline.New(parseDef(t, testDoc),
		pipeline.WithComboOptions(pipeline.DefaultKey, &combo.Options{MaxSampleSize: 2, Seed: 1}),
	)
	assert.Len(t, drain(t, p), 2)
}

func TestFlowWorkers(t *testing.T) {
	t.Parallel()
	def := parseDef(t, `
token_patterns:
  - static:
      - A:
          - - [a1, a2]
      - B:
          - - [b1, b2]
utterance_patterns:
  - [A]
  - [B]
  - [A, B]
`)
	sequential := utterances(drain(t, pipeline.New(def)))
	fanned := utterances(drain(t, pipeline.New(def, pipeline.WithWorkers(3))))

	// Order across patterns is unspecified with workers, but the multiset
	// of results is the same.
	sort.Strings(sequential)
	sort.Strings(fanned)
	assert.Equal(t, sequential, fanned)
}

func TestFlowErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid-def", func(t *testing.T) {
		t.Parallel()
		def := parseDef(t, `
token_patterns:
  - static:
      - A: [[[a]]]
utterance_patterns:
  - [A, MISSING]
`)
		results, errs := pipeline.New(def).Flow(context.Background())
		for range results {
		}
		assert.Error(t, <-errs)
	})

	t.Run("handler-error", func(t *testing.T) {
		t.Parallel()
		p := pipeline.New(parseDef(t, testDoc),
			pipeline.WithTokenHandlers(generate.HandlerMap{
				generate.DefaultKey: func(token, phrase string) (string, error) {
					return "", assert.AnError
				},
			}))
		results, errs := p.Flow(context.Background())
		for range results {
		}
		assert.ErrorIs(t, <-errs, assert.AnError)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		p := pipeline.New(parseDef(t, testDoc))
		results, errs := p.Flow(ctx)
		_, ok := <-results
		require.True(t, ok)
		cancel()
		assert.ErrorIs(t, <-errs, context.Canceled)
	})
}
