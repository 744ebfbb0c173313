// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/json"
	"io"

	"github.com/putput/putput/pkg/pipeline"
)

type record struct {
	Utterance string        `json:"utterance"`
	Tokens    []string      `json:"tokens"`
	Groups    []groupRecord `json:"groups"`
	GroupTags []string      `json:"groupTags,omitempty"`
}

type groupRecord struct {
	Name       string `json:"name"`
	TokenCount int    `json:"tokenCount"`
}

// A Writer encodes Results as JSON Lines: one object per Result, stable field
// order, newline-terminated.
type Writer struct {
	enc   *json.Encoder
	count int
}

func NewWriter(dst io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(dst)}
}

func (w *Writer) Write(res pipeline.Result) error {
	rec := record{
		Utterance: res.Utterance,
		Tokens:    res.Tokens,
		Groups:    make([]groupRecord, len(res.Groups)),
		GroupTags: res.GroupTags,
	}
	if rec.Tokens == nil {
		rec.Tokens = []string{}
	}
	for i, group := range res.Groups {
		rec.Groups[i] = groupRecord{Name: group.Name, TokenCount: group.TokenCount}
	}
	if err := w.enc.Encode(rec); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns how many records have been written.
func (w *Writer) Count() int {
	return w.count
}
