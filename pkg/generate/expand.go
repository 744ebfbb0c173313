// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package generate deals with turning a pattern definition in to utterances.
//
// Generation runs in two stages.  Expand flattens the definition's
// utterance_patterns: range tokens are unrolled, group references are spliced
// in (tracking which tokens each group contributed), and every token is
// resolved to the full list of phrases that can realize it.  Utterances then
// walks an Expansion's combinations, applying a token handler to each slot.
package generate

import (
	"fmt"
	"strings"

	"github.com/putput/putput/pkg/combo"
	"github.com/putput/putput/pkg/patterndef"
)

// A Group records that a span of TokenCount adjacent tokens was contributed
// by the named group; ungrouped tokens get a span named "None" of count 1.
type Group struct {
	Name       string
	TokenCount int
}

// An Expansion is one fully expanded utterance pattern.
type Expansion struct {
	// Tokens is the token sequence, after range and group expansion.
	Tokens []string
	// Combo holds, for each token slot, every phrase that token can
	// realize.
	Combo [][]string
	// Groups is the group layout over Tokens.
	Groups []Group
}

// Size returns the number of distinct utterances the expansion can produce.
func (exp Expansion) Size() uint64 {
	size := uint64(1)
	for _, phrases := range exp.Combo {
		size *= uint64(len(phrases))
	}
	return size
}

// Expand validates def and produces one Expansion per range- and
// group-expanded utterance pattern, in definition order.
//
// Phrase patterns for tokens declared dynamic come from the dynamic map;
// every declared dynamic token must have an entry.  Dynamic patterns may not
// reference base tokens.
func Expand(def *patterndef.Def, dynamic map[string][]patterndef.TokenPattern) ([]Expansion, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	phrases, err := tokenPhrases(def, dynamic)
	if err != nil {
		return nil, err
	}

	patterns, err := expandRanges(def.UtterancePatterns)
	if err != nil {
		return nil, err
	}

	patterns, layouts, err := expandGroups(def, patterns)
	if err != nil {
		return nil, err
	}

	expansions := make([]Expansion, len(patterns))
	for i, pattern := range patterns {
		exp := Expansion{
			Tokens: pattern,
			Combo:  make([][]string, len(pattern)),
			Groups: layouts[i],
		}
		for j, token := range pattern {
			tokenCombo, ok := phrases[token]
			if !ok {
				return nil, fmt.Errorf("generate: token %q has no patterns", token)
			}
			exp.Combo[j] = tokenCombo
		}
		expansions[i] = exp
	}
	return expansions, nil
}

// tokenPhrases resolves every token to the flattened list of phrases its
// patterns can realize.
func tokenPhrases(
	def *patterndef.Def,
	dynamic map[string][]patterndef.TokenPattern,
) (map[string][]string, error) {
	baseTokens := def.BaseTokenMap()
	cache := make(map[string][]string)

	ret := make(map[string][]string, len(def.Static)+len(def.Dynamic))
	for _, entry := range def.Static {
		expanded, err := expandTokenPatterns(entry.Patterns, baseTokens, cache)
		if err != nil {
			return nil, fmt.Errorf("generate: token %q: %w", entry.Token, err)
		}
		ret[entry.Token] = expanded
	}
	for _, token := range def.Dynamic {
		patterns, ok := dynamic[token]
		if !ok {
			return nil, fmt.Errorf("generate: dynamic token %q has no patterns", token)
		}
		for _, pattern := range patterns {
			for _, component := range pattern {
				if component.BaseToken != "" {
					return nil, fmt.Errorf(
						"generate: dynamic token %q: patterns may not reference base tokens",
						token)
				}
			}
		}
		expanded, err := expandTokenPatterns(patterns, nil, cache)
		if err != nil {
			return nil, fmt.Errorf("generate: dynamic token %q: %w", token, err)
		}
		ret[token] = expanded
	}
	return ret, nil
}

// expandTokenPatterns realizes each pattern (the product of its components'
// phrase lists, joined with spaces) and concatenates the results.  Identical
// patterns show up under many tokens in real definitions, so realizations are
// memoized in cache.
func expandTokenPatterns(
	patterns []patterndef.TokenPattern,
	baseTokens map[string][]string,
	cache map[string][]string,
) ([]string, error) {
	var ret []string
	for _, pattern := range patterns {
		components := make([][]string, len(pattern))
		for i, component := range pattern {
			if component.BaseToken != "" {
				components[i] = baseTokens[component.BaseToken]
			} else {
				components[i] = component.Phrases
			}
		}

		key := fmt.Sprintf("%q", components)
		expanded, hit := cache[key]
		if !hit {
			it, err := combo.Join(components, nil)
			if err != nil {
				return nil, err
			}
			for {
				phrases, ok := it.Next()
				if !ok {
					break
				}
				expanded = append(expanded, strings.Join(phrases, " "))
			}
			cache[key] = expanded
		}
		ret = append(ret, expanded...)
	}
	return ret, nil
}

// expandRanges unrolls range tokens: a pattern containing "N" or "N-M" tokens
// becomes one pattern per count combination, with the element before each
// range token repeated.
func expandRanges(patterns [][]string) ([][]string, error) {
	var ret [][]string
	for _, pattern := range patterns {
		expanded, err := expandRangesOne(pattern)
		if err != nil {
			return nil, err
		}
		ret = append(ret, expanded...)
	}
	return ret, nil
}

func expandRangesOne(pattern []string) ([][]string, error) {
	for i, tok := range pattern {
		if !patterndef.IsRangeToken(tok) {
			continue
		}
		r, err := patterndef.ParseRangeToken(tok)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			return nil, fmt.Errorf("generate: range token %q has nothing to repeat", tok)
		}
		var ret [][]string
		for n := r.Min; n <= r.Max; n++ {
			next := make([]string, 0, len(pattern)+n-2)
			next = append(next, pattern[:i-1]...)
			for j := 0; j < n; j++ {
				next = append(next, pattern[i-1])
			}
			next = append(next, pattern[i+1:]...)
			sub, err := expandRangesOne(next)
			if err != nil {
				return nil, err
			}
			ret = append(ret, sub...)
		}
		return ret, nil
	}
	return [][]string{pattern}, nil
}

// expandGroups splices group fragments in to the patterns, one reference at a
// time, until none remain.  A group whose fragment contains a range token
// contributes one variant per count, multiplying the pattern.  The returned
// layouts track, per pattern, which group contributed each span of tokens.
func expandGroups(def *patterndef.Def, patterns [][]string) ([][]string, [][]Group, error) {
	layouts := make([][]Group, len(patterns))
	for i, pattern := range patterns {
		layout := make([]Group, len(pattern))
		for j := range pattern {
			layout[j] = Group{Name: "None", TokenCount: 1}
		}
		layouts[i] = layout
	}
	if len(def.Groups) == 0 {
		return patterns, layouts, nil
	}

	variants := make(map[string][][]string, len(def.Groups))
	for _, group := range def.Groups {
		expanded, err := expandRangesOne(group.Items)
		if err != nil {
			return nil, nil, fmt.Errorf("generate: group %q: %w", group.Name, err)
		}
		variants[group.Name] = expanded
	}

	for {
		changed := false
		var nextPatterns [][]string
		var nextLayouts [][]Group
		for i, pattern := range patterns {
			idx := -1
			for j, tok := range pattern {
				if _, ok := variants[tok]; ok {
					idx = j
					break
				}
			}
			if idx < 0 {
				nextPatterns = append(nextPatterns, pattern)
				nextLayouts = append(nextLayouts, layouts[i])
				continue
			}
			changed = true
			name := pattern[idx]
			slot := groupSlotIndex(idx, layouts[i])
			outer := layouts[i][slot]
			for _, variant := range variants[name] {
				repl := Group{Name: name, TokenCount: len(variant)}
				if outer.Name != "None" {
					// A group referenced from inside another group's
					// fragment flattens in to the outer span.
					repl = Group{Name: outer.Name, TokenCount: outer.TokenCount + len(variant) - 1}
				}
				nextPatterns = append(nextPatterns, splice(pattern, idx, variant))
				nextLayouts = append(nextLayouts, splice(layouts[i], slot, []Group{repl}))
			}
		}
		patterns, layouts = nextPatterns, nextLayouts
		if !changed {
			return patterns, layouts, nil
		}
	}
}

// groupSlotIndex maps a token index to the index of the layout slot whose
// span covers it.
func groupSlotIndex(tokenIndex int, layout []Group) int {
	slot, covered := 0, 0
	for covered+layout[slot].TokenCount <= tokenIndex {
		covered += layout[slot].TokenCount
		slot++
	}
	return slot
}

func splice[T any](in []T, at int, replacement []T) []T {
	ret := make([]T, 0, len(in)-1+len(replacement))
	ret = append(ret, in[:at]...)
	ret = append(ret, replacement...)
	ret = append(ret, in[at+1:]...)
	return ret
}
