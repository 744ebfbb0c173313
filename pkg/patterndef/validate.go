// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package patterndef

import (
	"fmt"
)

// A ValidationError describes why a pattern definition document is invalid.
type ValidationError struct {
	// Section is the top-level key the problem is under, if known.
	Section string
	Msg     string
}

func (e *ValidationError) Error() string {
	if e.Section == "" {
		return "pattern definition: " + e.Msg
	}
	return fmt.Sprintf("pattern definition: %s: %s", e.Section, e.Msg)
}

// Validate checks the cross-references and shapes that Parse cannot: token
// names must be unique across sections, static patterns may only reference
// defined base tokens, utterance patterns may only reference defined tokens
// and groups, range tokens must follow something repeatable, and group
// fragments must not cycle.
func (def *Def) Validate() error {
	if len(def.Static) == 0 && len(def.Dynamic) == 0 {
		return &ValidationError{Section: "token_patterns", Msg: "no tokens are defined"}
	}
	if len(def.UtterancePatterns) == 0 {
		return &ValidationError{Section: "utterance_patterns", Msg: "no utterance patterns are defined"}
	}

	names := make(map[string]string) // name -> defining section
	defineName := func(section, name string) error {
		if name == "" {
			return &ValidationError{Section: section, Msg: "empty name"}
		}
		if IsRangeToken(name) {
			return &ValidationError{
				Section: section,
				Msg:     fmt.Sprintf("%q: names must not look like range tokens", name),
			}
		}
		if prev, dup := names[name]; dup {
			return &ValidationError{
				Section: section,
				Msg:     fmt.Sprintf("%q is already defined under %s", name, prev),
			}
		}
		names[name] = section
		return nil
	}

	baseTokens := def.BaseTokenMap()
	for _, bt := range def.BaseTokens {
		if err := defineName("base_tokens", bt.Name); err != nil {
			return err
		}
		if len(bt.Items) == 0 {
			return &ValidationError{
				Section: "base_tokens",
				Msg:     fmt.Sprintf("%q: empty phrase list", bt.Name),
			}
		}
	}
	for _, entry := range def.Static {
		if err := defineName("token_patterns", entry.Token); err != nil {
			return err
		}
		if err := validateStaticEntry(entry, baseTokens); err != nil {
			return err
		}
	}
	for _, token := range def.Dynamic {
		if err := defineName("token_patterns", token); err != nil {
			return err
		}
	}

	tokens := make(map[string]struct{}, len(def.Static)+len(def.Dynamic))
	for _, entry := range def.Static {
		tokens[entry.Token] = struct{}{}
	}
	for _, token := range def.Dynamic {
		tokens[token] = struct{}{}
	}

	groups := def.GroupMap()
	for _, group := range def.Groups {
		if group.Name == "None" {
			// "None" marks ungrouped tokens in generated output.
			return &ValidationError{Section: "groups", Msg: `"None" is reserved`}
		}
		if err := defineName("groups", group.Name); err != nil {
			return err
		}
		if err := validatePattern("groups", group.Name, group.Items, tokens, groups); err != nil {
			return err
		}
	}
	if err := checkGroupCycles(def.Groups, groups); err != nil {
		return err
	}

	for i, pattern := range def.UtterancePatterns {
		name := fmt.Sprintf("pattern %d", i)
		if err := validatePattern("utterance_patterns", name, pattern, tokens, groups); err != nil {
			return err
		}
	}
	return nil
}

func validateStaticEntry(entry StaticEntry, baseTokens map[string][]string) error {
	if len(entry.Patterns) == 0 {
		return &ValidationError{
			Section: "token_patterns",
			Msg:     fmt.Sprintf("token %q: no patterns", entry.Token),
		}
	}
	for _, pattern := range entry.Patterns {
		if len(pattern) == 0 {
			return &ValidationError{
				Section: "token_patterns",
				Msg:     fmt.Sprintf("token %q: empty pattern", entry.Token),
			}
		}
		for _, component := range pattern {
			if component.BaseToken != "" {
				if _, ok := baseTokens[component.BaseToken]; !ok {
					return &ValidationError{
						Section: "token_patterns",
						Msg: fmt.Sprintf("token %q: undefined base token %q",
							entry.Token, component.BaseToken),
					}
				}
				continue
			}
			if len(component.Phrases) == 0 {
				return &ValidationError{
					Section: "token_patterns",
					Msg:     fmt.Sprintf("token %q: empty phrase list", entry.Token),
				}
			}
		}
	}
	return nil
}

func validatePattern(
	section string,
	name string,
	pattern []string,
	tokens map[string]struct{},
	groups map[string][]string,
) error {
	if len(pattern) == 0 {
		return &ValidationError{Section: section, Msg: name + ": empty pattern"}
	}
	for i, tok := range pattern {
		if IsRangeToken(tok) {
			if _, err := ParseRangeToken(tok); err != nil {
				return err
			}
			if i == 0 {
				return &ValidationError{
					Section: section,
					Msg:     fmt.Sprintf("%s: range token %q has nothing to repeat", name, tok),
				}
			}
			if IsRangeToken(pattern[i-1]) {
				return &ValidationError{
					Section: section,
					Msg:     fmt.Sprintf("%s: range token %q follows another range token", name, tok),
				}
			}
			continue
		}
		if _, ok := tokens[tok]; ok {
			continue
		}
		if _, ok := groups[tok]; ok {
			continue
		}
		return &ValidationError{
			Section: section,
			Msg:     fmt.Sprintf("%s: undefined token %q", name, tok),
		}
	}
	return nil
}

func checkGroupCycles(list []NamedList, groups map[string][]string) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(groups))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return &ValidationError{
				Section: "groups",
				Msg:     fmt.Sprintf("%q is part of a reference cycle", name),
			}
		case done:
			return nil
		}
		state[name] = visiting
		for _, tok := range groups[name] {
			if _, ok := groups[tok]; ok {
				if err := visit(tok); err != nil {
					return err
				}
			}
		}
		state[name] = done
		return nil
	}
	for _, group := range list {
		if err := visit(group.Name); err != nil {
			return err
		}
	}
	return nil
}
