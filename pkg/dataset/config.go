// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dataset deals with writing generated results out as artifacts: a
// JSONL encoding of the result stream, and the YAML sampling config that
// controls how much of each pattern's combination space ends up in the
// artifact.
package dataset

import (
	"fmt"
	"os"

	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/yaml"

	"github.com/putput/putput/pkg/combo"
)

// A SampleConfig says how to sample one utterance pattern's combinations.
type SampleConfig struct {
	// Sample is either the string "all" (emit the full combination
	// space) or an integer sample size.  Unset means "all".
	Sample *intstr.IntOrString `json:"sample,omitempty"`

	// WithReplacement and Seed are passed through to combo.Options and
	// are only meaningful with an integer Sample.
	WithReplacement bool  `json:"withReplacement,omitempty"`
	Seed            int64 `json:"seed,omitempty"`
}

// A Config maps utterance patterns (tokens joined with single spaces, or
// "DEFAULT") to their sampling behavior.
type Config map[string]SampleConfig

// LoadConfig reads a sampling config YAML file, for example:
//
//	DEFAULT:
//	  sample: all
//	WAKE PLAY_SONG:
//	  sample: 500
//	  withReplacement: true
//	  seed: 42
func LoadConfig(filename string) (Config, error) {
	body, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(body, &cfg, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := cfg.ComboOptions(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ComboOptions lowers the config to per-pattern combo options; "all" entries
// lower to nil (full product).
func (cfg Config) ComboOptions() (map[string]*combo.Options, error) {
	ret := make(map[string]*combo.Options, len(cfg))
	for key, sc := range cfg {
		if sc.Sample == nil {
			ret[key] = nil
			continue
		}
		switch sc.Sample.Type {
		case intstr.String:
			if sc.Sample.StrVal != "all" {
				return nil, fmt.Errorf("dataset: %q: sample must be \"all\" or an integer, not %q",
					key, sc.Sample.StrVal)
			}
			ret[key] = nil
		case intstr.Int:
			if sc.Sample.IntVal <= 0 {
				return nil, fmt.Errorf("dataset: %q: sample size must be > 0: %d",
					key, sc.Sample.IntVal)
			}
			ret[key] = &combo.Options{
				MaxSampleSize:   int(sc.Sample.IntVal),
				WithReplacement: sc.WithReplacement,
				Seed:            sc.Seed,
			}
		default:
			return nil, fmt.Errorf("dataset: %q: malformed sample value", key)
		}
	}
	return ret, nil
}
