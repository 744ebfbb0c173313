// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package testutil has the shared test helpers: value dumps, unified-diff
// assertions, and layer-inspection utilities.
package testutil

import (
	"archive/tar"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump renders a value for diffing: stable, address-free.
func Dump(v interface{}) string {
	return spewConfig.Sdump(v)
}

// AssertEqual is assert.Equal, but reports mismatches as a unified diff of
// Dump output, which stays readable for big nested values.
func AssertEqual(t *testing.T, expected, actual interface{}, name string) bool {
	t.Helper()
	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(Dump(expected)),
		B:        difflib.SplitLines(Dump(actual)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		diff = err.Error()
	}
	t.Errorf("%s mismatch:\n%s", name, diff)
	return false
}

// LayerFiles reads back a layer as a filename -> content map, for asserting
// on layers without caring about tar details.
func LayerFiles(t *testing.T, layer ociv1.Layer) map[string]string {
	t.Helper()
	ret := make(map[string]string)
	reader, err := layer.Uncompressed()
	if err != nil {
		t.Fatalf("layer: %v", err)
	}
	defer func() {
		_ = reader.Close()
	}()
	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("layer: %v", err)
		}
		if header.Typeflag == tar.TypeDir {
			ret[strings.TrimSuffix(header.Name, "/")+"/"] = ""
			continue
		}
		content, err := io.ReadAll(tarReader)
		if err != nil {
			t.Fatalf("layer: %v", err)
		}
		ret[header.Name] = string(content)
	}
	return ret
}

// LayerNames reads back a layer's sorted entry names.
func LayerNames(t *testing.T, layer ociv1.Layer) []string {
	t.Helper()
	files := LayerFiles(t, layer)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
