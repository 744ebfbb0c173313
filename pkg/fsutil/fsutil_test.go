// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package fsutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/fsutil"
	"github.com/putput/putput/pkg/testutil"
)

func TestLayerFromFileReferences(t *testing.T) {
	t.Parallel()
	clampTime := time.Unix(1600000000, 0)
	layer, err := fsutil.LayerFromFileReferences([]fsutil.FileReference{
		fsutil.NewMemFile("samples/z.jsonl", 0o644, clampTime, []byte("z\n")),
		fsutil.NewMemFile("samples/a.jsonl", 0o644, clampTime, []byte("a\n")),
		// "-" < "/" in a plain string compare; part-wise sorting must
		// still put the directory's children together.
		fsutil.NewMemFile("samples-extra", 0o644, clampTime, []byte("x\n")),
	}, clampTime)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"samples-extra",
		"samples/a.jsonl",
		"samples/z.jsonl",
	}, testutil.LayerNames(t, layer))
	assert.Equal(t, "a\n", testutil.LayerFiles(t, layer)["samples/a.jsonl"])
}

func TestWriteOpenLayerRoundTrip(t *testing.T) {
	t.Parallel()
	clampTime := time.Unix(1600000000, 0)
	layer, err := fsutil.LayerFromFileReferences([]fsutil.FileReference{
		fsutil.NewMemFile("samples/dataset.jsonl", 0o644, clampTime, []byte("{}\n")),
	}, clampTime)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fsutil.WriteLayer(layer, &buf))

	filename := filepath.Join(t.TempDir(), "layer.tar")
	require.NoError(t, os.WriteFile(filename, buf.Bytes(), 0o644))

	reopened, err := fsutil.OpenLayer(filename)
	require.NoError(t, err)
	assert.Equal(t,
		testutil.LayerFiles(t, layer),
		testutil.LayerFiles(t, reopened))
}

func TestOpenMissing(t *testing.T) {
	t.Parallel()
	_, err := fsutil.OpenImage(filepath.Join(t.TempDir(), "nope.tar"))
	assert.Error(t, err)
	_, err = fsutil.OpenLayer(filepath.Join(t.TempDir(), "nope.tar"))
	assert.Error(t, err)
}
