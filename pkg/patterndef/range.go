// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package patterndef

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rangeRE = regexp.MustCompile(`^\d+(-\d+)?$`)

// IsRangeToken reports whether tok is a range token: a bare count "N" or a
// span "N-M".  A range token repeats the utterance-pattern element before it.
func IsRangeToken(tok string) bool {
	return rangeRE.MatchString(tok)
}

// A Range is a parsed range token.  Min and Max are inclusive; a bare count
// has Min == Max.
type Range struct {
	Min int
	Max int
}

// ParseRangeToken parses a range token.  Counts must be positive, and a span's
// minimum must be less than its maximum.
func ParseRangeToken(tok string) (Range, error) {
	if !IsRangeToken(tok) {
		return Range{}, &ValidationError{Msg: fmt.Sprintf("not a range token: %q", tok)}
	}
	if minStr, maxStr, isSpan := strings.Cut(tok, "-"); isSpan {
		minVal, err := strconv.Atoi(minStr)
		if err != nil {
			return Range{}, &ValidationError{Msg: fmt.Sprintf("range token %q: %v", tok, err)}
		}
		maxVal, err := strconv.Atoi(maxStr)
		if err != nil {
			return Range{}, &ValidationError{Msg: fmt.Sprintf("range token %q: %v", tok, err)}
		}
		if minVal <= 0 || minVal >= maxVal {
			return Range{}, &ValidationError{
				Msg: fmt.Sprintf("range token %q: must be 0 < min < max", tok),
			}
		}
		return Range{Min: minVal, Max: maxVal}, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return Range{}, &ValidationError{Msg: fmt.Sprintf("range token %q: %v", tok, err)}
	}
	if n <= 0 {
		return Range{}, &ValidationError{Msg: fmt.Sprintf("range token %q: count must be positive", tok)}
	}
	return Range{Min: n, Max: n}, nil
}
