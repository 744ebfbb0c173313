// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package iob2 relabels generated output with IOB2 chunk tags, the format
// most sequence-labeling trainers consume: the first word of a chunk is
// tagged B-NAME, the rest I-NAME, and words outside any chunk O.
package iob2

import (
	"fmt"
	"strings"

	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/pipeline"
)

// Options returns the pipeline options that make every token handler emit
// per-word IOB2 tags instead of the default "[TOKEN(phrase)]" form, and fold
// every Result's group layout in to per-word group tags (Result.GroupTags).
// The folding hook is registered under pipeline.DefaultKey.
func Options() []pipeline.Option {
	return []pipeline.Option{
		pipeline.WithTokenHandlers(generate.HandlerMap{
			generate.DefaultKey: Handler,
		}),
		pipeline.WithComboHook(pipeline.DefaultKey, func(res pipeline.Result) (pipeline.Result, error) {
			tags, err := GroupTags(res)
			if err != nil {
				return pipeline.Result{}, err
			}
			res.GroupTags = tags
			return res, nil
		}),
	}
}

// Handler tags each word of phrase: B-token for the first word, I-token for
// the rest.
func Handler(token, phrase string) (string, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return "", fmt.Errorf("iob2: token %q: empty phrase", token)
	}
	tags := make([]string, len(words))
	tags[0] = "B-" + token
	for i := range tags[1:] {
		tags[i+1] = "I-" + token
	}
	return strings.Join(tags, " "), nil
}

// GroupTags derives per-word group tags for a Result whose Tokens were
// produced by Handler: each group's span is tagged B-/I- over all the words
// its token slots cover, and "None" spans are tagged O.
func GroupTags(res pipeline.Result) ([]string, error) {
	var tags []string
	slot := 0
	for _, group := range res.Groups {
		words := 0
		for i := 0; i < group.TokenCount; i++ {
			if slot >= len(res.Tokens) {
				return nil, fmt.Errorf("iob2: group layout covers %d token slots, have %d",
					slot+1, len(res.Tokens))
			}
			words += len(strings.Fields(res.Tokens[slot]))
			slot++
		}
		for i := 0; i < words; i++ {
			switch {
			case group.Name == "None":
				tags = append(tags, "O")
			case i == 0:
				tags = append(tags, "B-"+group.Name)
			default:
				tags = append(tags, "I-"+group.Name)
			}
		}
	}
	if slot != len(res.Tokens) {
		return nil, fmt.Errorf("iob2: group layout covers %d token slots, have %d",
			slot, len(res.Tokens))
	}
	return tags, nil
}
