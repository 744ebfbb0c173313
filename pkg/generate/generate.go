// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"strings"

	"github.com/putput/putput/pkg/combo"
)

// A Handler turns a (token, phrase) slot in to the handled-token string that
// is emitted alongside the utterance.
type Handler func(token, phrase string) (string, error)

// DefaultKey is the HandlerMap key consulted when a token has no handler of
// its own.
const DefaultKey = "DEFAULT"

// A HandlerMap maps token names (or DefaultKey) to handlers.
type HandlerMap map[string]Handler

func (m HandlerMap) handler(token string) Handler {
	if h, ok := m[token]; ok {
		return h
	}
	if h, ok := m[DefaultKey]; ok {
		return h
	}
	return DefaultHandler
}

// DefaultHandler emits "[TOKEN(phrase)]".
func DefaultHandler(token, phrase string) (string, error) {
	return "[" + token + "(" + phrase + ")]", nil
}

// An Utterance is one generated utterance with its handled tokens, one per
// token slot of the expansion it came from.
type Utterance struct {
	Text   string
	Tokens []string
}

// An Iter lazily yields Utterances.  It is not safe for concurrent use.
type Iter struct {
	inner *combo.Iter[slot]
}

type slot struct {
	phrase  string
	handled string
}

// Next returns the next utterance, or ok=false when the iterator is
// exhausted.
func (it *Iter) Next() (Utterance, bool) {
	slots, ok := it.inner.Next()
	if !ok {
		return Utterance{}, false
	}
	phrases := make([]string, len(slots))
	handled := make([]string, len(slots))
	for i, s := range slots {
		phrases[i] = s.phrase
		handled[i] = s.handled
	}
	return Utterance{Text: strings.Join(phrases, " "), Tokens: handled}, true
}

// Utterances iterates exp's combinations: one phrase per token slot, joined
// with single spaces, each phrase run through its token's handler.  Handlers
// run once per (token, phrase) pair up front, not once per utterance.  A nil
// opts walks the full product; non-nil opts samples it (see combo.Options).
func Utterances(exp Expansion, handlers HandlerMap, opts *combo.Options) (*Iter, error) {
	slots := make([][]slot, len(exp.Combo))
	for i, phrases := range exp.Combo {
		handle := handlers.handler(exp.Tokens[i])
		slots[i] = make([]slot, len(phrases))
		for j, phrase := range phrases {
			handled, err := handle(exp.Tokens[i], phrase)
			if err != nil {
				return nil, err
			}
			slots[i][j] = slot{phrase: phrase, handled: handled}
		}
	}
	inner, err := combo.Join(slots, opts)
	if err != nil {
		return nil, err
	}
	return &Iter{inner: inner}, nil
}
