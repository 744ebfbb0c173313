// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package pipeline wires a pattern definition to a stream of generated
// results.
//
// A Pipeline is configured with functional options and then run with Flow,
// which returns a result channel and an error channel.  Hooks and sampling
// options are keyed per utterance pattern (the pattern's tokens joined with
// single spaces) with a "DEFAULT" fallback, so one pipeline can treat
// different patterns differently.
package pipeline

import (
	"context"
	"strings"

	"github.com/datawire/dlib/dlog"
	"golang.org/x/sync/errgroup"

	"github.com/putput/putput/pkg/combo"
	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
)

// DefaultKey is the per-pattern map key consulted when an utterance pattern
// has no entry of its own.
const DefaultKey = "DEFAULT"

// A Result is one generated utterance with its handled tokens and group
// layout.
type Result struct {
	Utterance string
	Tokens    []string
	Groups    []generate.Group

	// GroupTags is a per-word relabeling of Groups, filled in by presets
	// that label groups (see pkg/preset/iob2).  Nil otherwise.
	GroupTags []string
}

// A Hook rewrites a Result before it is emitted.
type Hook func(Result) (Result, error)

// An ExpansionHook rewrites an Expansion before generation runs on it.
type ExpansionHook func(generate.Expansion) (generate.Expansion, error)

// Pipeline generates Results from a pattern definition.
type Pipeline struct {
	def            *patterndef.Def
	dynamic        map[string][]patterndef.TokenPattern
	handlers       generate.HandlerMap
	comboOpts      map[string]*combo.Options
	expansionHooks map[string][]ExpansionHook
	comboHooks     map[string][]Hook
	final          Hook
	workers        int
}

// An Option configures a Pipeline.
type Option func(*Pipeline)

// WithDynamicTokenPatterns supplies phrase patterns for the definition's
// dynamic tokens.
func WithDynamicTokenPatterns(dynamic map[string][]patterndef.TokenPattern) Option {
	return func(p *Pipeline) { p.dynamic = dynamic }
}

// WithTokenHandlers sets the token handler map (see generate.HandlerMap).
func WithTokenHandlers(handlers generate.HandlerMap) Option {
	return func(p *Pipeline) {
		if p.handlers == nil {
			p.handlers = make(generate.HandlerMap, len(handlers))
		}
		for token, handler := range handlers {
			p.handlers[token] = handler
		}
	}
}

// WithComboOptions sets the sampling options for the utterance pattern keyed
// by key (or for every pattern without its own entry, with key DefaultKey).
func WithComboOptions(key string, opts *combo.Options) Option {
	return func(p *Pipeline) { p.comboOpts[key] = opts }
}

// WithExpansionHook appends a hook run on the keyed pattern's Expansion
// before generation.
func WithExpansionHook(key string, hook ExpansionHook) Option {
	return func(p *Pipeline) { p.expansionHooks[key] = append(p.expansionHooks[key], hook) }
}

// WithComboHook appends a hook run on each Result of the keyed pattern.
func WithComboHook(key string, hook Hook) Option {
	return func(p *Pipeline) { p.comboHooks[key] = append(p.comboHooks[key], hook) }
}

// WithFinalHook sets a hook run on every Result, after any combo hooks.
func WithFinalHook(hook Hook) Option {
	return func(p *Pipeline) { p.final = hook }
}

// WithWorkers fans the expansions out over n goroutines.  Order within one
// utterance pattern is preserved; order across patterns is then unspecified.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// New creates a Pipeline over def.  The definition is validated on Flow, not
// here.
func New(def *patterndef.Def, opts ...Option) *Pipeline {
	p := &Pipeline{
		def:            def,
		comboOpts:      make(map[string]*combo.Options),
		expansionHooks: make(map[string][]ExpansionHook),
		comboHooks:     make(map[string][]Hook),
		workers:        1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// patternKey is how per-pattern maps are keyed: the pattern's tokens joined
// with single spaces.  Keyed on the pre-hook token sequence.
func patternKey(exp generate.Expansion) string {
	return strings.Join(exp.Tokens, " ")
}

func lookup[V any](m map[string]V, key string) V {
	if v, ok := m[key]; ok {
		return v
	}
	return m[DefaultKey]
}

// Flow starts generation and returns a channel of Results and a channel that
// yields the terminal error, if any.  Both channels are closed when the flow
// finishes; cancel ctx to stop early.
func (p *Pipeline) Flow(ctx context.Context) (<-chan Result, <-chan error) {
	results := make(chan Result)
	errs := make(chan error, 1)

	go func() {
		defer close(results)
		defer close(errs)

		expansions, err := generate.Expand(p.def, p.dynamic)
		if err != nil {
			errs <- err
			return
		}
		dlog.Debugf(ctx, "expanded %d utterance patterns", len(expansions))

		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(max(p.workers, 1))
		for _, exp := range expansions {
			exp := exp
			group.Go(func() error {
				return p.flowOne(gctx, exp, results)
			})
		}
		if err := group.Wait(); err != nil {
			errs <- err
		}
	}()

	return results, errs
}

func (p *Pipeline) flowOne(ctx context.Context, exp generate.Expansion, results chan<- Result) error {
	key := patternKey(exp)

	for _, hook := range lookup(p.expansionHooks, key) {
		var err error
		exp, err = hook(exp)
		if err != nil {
			return err
		}
	}

	it, err := generate.Utterances(exp, p.handlers, lookup(p.comboOpts, key))
	if err != nil {
		return err
	}

	emitted := 0
	for {
		utterance, ok := it.Next()
		if !ok {
			break
		}
		res := Result{
			Utterance: utterance.Text,
			Tokens:    utterance.Tokens,
			Groups:    exp.Groups,
		}
		for _, hook := range lookup(p.comboHooks, key) {
			res, err = hook(res)
			if err != nil {
				return err
			}
		}
		if p.final != nil {
			res, err = p.final(res)
			if err != nil {
				return err
			}
		}
		// Check the context before offering the send, so a canceled
		// flow stops even if the consumer is still draining.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- res:
			emitted++
		}
	}
	dlog.Debugf(ctx, "pattern %q: emitted %d utterances", key, emitted)
	return nil
}
