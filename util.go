package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
)

// parseDynamicFlags parses repeated --dynamic TOKEN=phrase,phrase,... flags
// in to a dynamic token-patterns map.  Each flag contributes one
// single-component pattern; repeating a token appends another pattern.
func parseDynamicFlags(flags []string) (map[string][]patterndef.TokenPattern, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	ret := make(map[string][]patterndef.TokenPattern)
	for _, flag := range flags {
		token, phrases, ok := strings.Cut(flag, "=")
		if !ok || token == "" || phrases == "" {
			return nil, fmt.Errorf("malformed --dynamic %q: expected TOKEN=PHRASE[,PHRASE...]", flag)
		}
		ret[token] = append(ret[token], patterndef.TokenPattern{
			{Phrases: strings.Split(phrases, ",")},
		})
	}
	return ret, nil
}

// runPipeline drains p in to write, stopping the flow early if write fails.
func runPipeline(ctx context.Context, p *pipeline.Pipeline, write func(pipeline.Result) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, errs := p.Flow(ctx)
	var writeErr error
	for res := range results {
		if writeErr != nil {
			continue // drain so the flow can finish
		}
		if writeErr = write(res); writeErr != nil {
			cancel()
		}
	}
	flowErr := <-errs
	if writeErr != nil {
		return writeErr
	}
	if flowErr != nil && errors.Is(flowErr, context.Canceled) && ctx.Err() == nil {
		flowErr = nil
	}
	return flowErr
}
