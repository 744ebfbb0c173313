// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package dir_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putput/putput/pkg/dir"
	"github.com/putput/putput/pkg/testutil"
)

func TestLayerFromDir(t *testing.T) {
	t.Parallel()
	tmpdir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpdir, "smart_speaker"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpdir, "smart_speaker", "pattern_def.yml"),
		[]byte("token_patterns: []\n"),
		0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpdir, "dataset.jsonl"),
		[]byte("{\"utterance\":\"hey\"}\n"),
		0o644))

	clampTime := time.Unix(1600000000, 0)
	layer, err := dir.LayerFromDir(tmpdir, "samples", clampTime)
	require.NoError(t, err)

	files := testutil.LayerFiles(t, layer)
	assert.Equal(t, map[string]string{
		"samples/":                              "",
		"samples/smart_speaker/":                "",
		"samples/dataset.jsonl":                 "{\"utterance\":\"hey\"}\n",
		"samples/smart_speaker/pattern_def.yml": "token_patterns: []\n",
	}, files)
}

func TestLayerFromDirNoPrefix(t *testing.T) {
	t.Parallel()
	tmpdir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpdir, "a.txt"), []byte("a"), 0o644))

	layer, err := dir.LayerFromDir(tmpdir, "", time.Unix(1600000000, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, testutil.LayerNames(t, layer))
}

func TestLayerFromDirClampsTimestamps(t *testing.T) {
	t.Parallel()
	tmpdir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpdir, "a.txt"), []byte("a"), 0o644))

	clampTime := time.Unix(1, 0) // long before the file was written
	layer, err := dir.LayerFromDir(tmpdir, "", clampTime)
	require.NoError(t, err)

	// Two layers built at different wall-clock times must be identical.
	digest1, err := layer.Digest()
	require.NoError(t, err)
	layer2, err := dir.LayerFromDir(tmpdir, "", clampTime)
	require.NoError(t, err)
	digest2, err := layer2.Digest()
	require.NoError(t, err)
	assert.Equal(t, digest1, digest2)
}
