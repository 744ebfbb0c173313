// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package patterndef deals with loading and validating YAML pattern
// definitions.
//
// A pattern definition names tokens, gives the phrase patterns that can
// realize each token, and lists the utterance patterns (token sequences) to
// generate.  See the package example for the full document shape.
//
// Scalars in a pattern definition are always treated as strings, so a bare
// `2` in an utterance pattern is the range token "2", not a number.  Decoding
// preserves document order, so generated output is deterministic for a given
// definition.
package patterndef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// A Component is one slot of a token pattern: either a list of
// interchangeable phrases, or a reference to a base token that names one.
type Component struct {
	BaseToken string
	Phrases   []string
}

// A TokenPattern is a sequence of components; realizing the pattern picks one
// phrase per component and joins them with spaces.
type TokenPattern []Component

// A StaticEntry maps a token name to the patterns that can realize it.
type StaticEntry struct {
	Token    string
	Patterns []TokenPattern
}

// A NamedList is an ordered name -> list-of-strings entry, used for both
// base_tokens (phrase lists) and groups (utterance-pattern fragments).
type NamedList struct {
	Name  string
	Items []string
}

// Def is a decoded pattern definition.  Field order within the slices follows
// document order.
type Def struct {
	Static            []StaticEntry
	Dynamic           []string
	BaseTokens        []NamedList
	Groups            []NamedList
	UtterancePatterns [][]string
}

// BaseTokenMap returns the base_tokens section as a lookup map.
func (def *Def) BaseTokenMap() map[string][]string {
	ret := make(map[string][]string, len(def.BaseTokens))
	for _, bt := range def.BaseTokens {
		ret[bt.Name] = bt.Items
	}
	return ret
}

// GroupMap returns the groups section as a lookup map.
func (def *Def) GroupMap() map[string][]string {
	ret := make(map[string][]string, len(def.Groups))
	for _, group := range def.Groups {
		ret[group.Name] = group.Items
	}
	return ret
}

// Load reads and parses (but does not Validate) the pattern definition at
// filename.
func Load(filename string) (*Def, error) {
	body, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	def, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return def, nil
}

// Parse parses (but does not Validate) a pattern definition document.
func Parse(body []byte) (*Def, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	def := new(Def)
	for _, item := range doc {
		key, ok := scalarString(item.Key)
		if !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("top-level key is not a scalar: %v", item.Key)}
		}
		var err error
		switch key {
		case "token_patterns":
			err = def.parseTokenPatterns(item.Value)
		case "utterance_patterns":
			def.UtterancePatterns, err = parseStringLists(key, item.Value)
		case "base_tokens":
			def.BaseTokens, err = parseNamedLists(key, item.Value)
		case "groups":
			def.Groups, err = parseNamedLists(key, item.Value)
		default:
			err = &ValidationError{Section: key, Msg: "unknown top-level key"}
		}
		if err != nil {
			return nil, err
		}
	}
	return def, nil
}

func (def *Def) parseTokenPatterns(val interface{}) error {
	items, ok := asList(val)
	if !ok {
		return &ValidationError{Section: "token_patterns", Msg: "must be a list"}
	}
	for _, item := range items {
		entry, ok := asMapSlice(item)
		if !ok {
			return &ValidationError{Section: "token_patterns", Msg: "entries must be maps"}
		}
		for _, kv := range entry {
			kind, _ := scalarString(kv.Key)
			switch kind {
			case "static":
				if err := def.parseStatic(kv.Value); err != nil {
					return err
				}
			case "dynamic":
				tokens, ok := asStringList(kv.Value)
				if !ok {
					return &ValidationError{Section: "token_patterns", Msg: "dynamic must be a list of token names"}
				}
				def.Dynamic = append(def.Dynamic, tokens...)
			default:
				return &ValidationError{
					Section: "token_patterns",
					Msg:     fmt.Sprintf("entries must be keyed static or dynamic, not %q", kind),
				}
			}
		}
	}
	return nil
}

func (def *Def) parseStatic(val interface{}) error {
	items, ok := asList(val)
	if !ok {
		return &ValidationError{Section: "token_patterns", Msg: "static must be a list"}
	}
	for _, item := range items {
		entry, ok := asMapSlice(item)
		if !ok {
			return &ValidationError{Section: "token_patterns", Msg: "static entries must be maps"}
		}
		for _, kv := range entry {
			token, ok := scalarString(kv.Key)
			if !ok {
				return &ValidationError{Section: "token_patterns", Msg: "static token names must be scalars"}
			}
			patterns, err := parseStaticPatterns(token, kv.Value)
			if err != nil {
				return err
			}
			def.Static = append(def.Static, StaticEntry{Token: token, Patterns: patterns})
		}
	}
	return nil
}

func parseStaticPatterns(token string, val interface{}) ([]TokenPattern, error) {
	items, ok := asList(val)
	if !ok {
		return nil, &ValidationError{
			Section: "token_patterns",
			Msg:     fmt.Sprintf("token %q: patterns must be a list", token),
		}
	}
	patterns := make([]TokenPattern, 0, len(items))
	for _, item := range items {
		componentVals, ok := asList(item)
		if !ok {
			return nil, &ValidationError{
				Section: "token_patterns",
				Msg:     fmt.Sprintf("token %q: each pattern must be a list of components", token),
			}
		}
		pattern := make(TokenPattern, 0, len(componentVals))
		for _, componentVal := range componentVals {
			if name, ok := scalarString(componentVal); ok {
				pattern = append(pattern, Component{BaseToken: name})
				continue
			}
			phrases, ok := asStringList(componentVal)
			if !ok {
				return nil, &ValidationError{
					Section: "token_patterns",
					Msg:     fmt.Sprintf("token %q: components must be phrase lists or base token names", token),
				}
			}
			pattern = append(pattern, Component{Phrases: phrases})
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func parseNamedLists(section string, val interface{}) ([]NamedList, error) {
	items, ok := asList(val)
	if !ok {
		return nil, &ValidationError{Section: section, Msg: "must be a list"}
	}
	ret := make([]NamedList, 0, len(items))
	for _, item := range items {
		entry, ok := asMapSlice(item)
		if !ok || len(entry) != 1 {
			return nil, &ValidationError{Section: section, Msg: "entries must be single-entry maps"}
		}
		name, ok := scalarString(entry[0].Key)
		if !ok {
			return nil, &ValidationError{Section: section, Msg: "names must be scalars"}
		}
		values, ok := asStringList(entry[0].Value)
		if !ok {
			return nil, &ValidationError{
				Section: section,
				Msg:     fmt.Sprintf("%q must map to a list of strings", name),
			}
		}
		ret = append(ret, NamedList{Name: name, Items: values})
	}
	return ret, nil
}

func parseStringLists(section string, val interface{}) ([][]string, error) {
	items, ok := asList(val)
	if !ok {
		return nil, &ValidationError{Section: section, Msg: "must be a list"}
	}
	ret := make([][]string, 0, len(items))
	for _, item := range items {
		list, ok := asStringList(item)
		if !ok {
			return nil, &ValidationError{Section: section, Msg: "entries must be lists of strings"}
		}
		ret = append(ret, list)
	}
	return ret, nil
}

// scalarString stringifies a YAML scalar.  The original tool loads documents
// with a base loader that leaves every scalar a string; yaml.v2 types them, so
// undo that here.
func scalarString(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

func asList(v interface{}) ([]interface{}, bool) {
	list, ok := v.([]interface{})
	return list, ok
}

func asStringList(v interface{}) ([]string, bool) {
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	ret := make([]string, len(list))
	for i, item := range list {
		str, ok := scalarString(item)
		if !ok {
			return nil, false
		}
		ret[i] = str
	}
	return ret, true
}

func asMapSlice(v interface{}) (yaml.MapSlice, bool) {
	m, ok := v.(yaml.MapSlice)
	return m, ok
}
