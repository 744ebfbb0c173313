// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package dir deals with creating a layer from a directory on disk.
package dir

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// LayerFromDir tars dirname up in to a layer.  A non-empty prefix (forward
// slashes, absolute but without the leading "/", e.g. "samples") is prepended
// to every name, with the needed parent directories created.  Timestamps
// newer than clampTime are clamped to it.
func LayerFromDir(
	dirname string,
	prefix string,
	clampTime time.Time,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	var buf bytes.Buffer
	tarWriter := tar.NewWriter(&buf)

	if prefix != "" {
		var parents []string
		for dir := prefix; dir != "."; dir = path.Dir(dir) {
			parents = append(parents, dir)
		}
		for i := len(parents) - 1; i >= 0; i-- {
			if err := tarWriter.WriteHeader(&tar.Header{
				Name:     parents[i],
				Typeflag: tar.TypeDir,
				Mode:     0o755,
				ModTime:  clampTime,
			}); err != nil {
				return nil, err
			}
		}
	}

	err := filepath.Walk(dirname, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		name, err := filepath.Rel(dirname, filename)
		if err != nil {
			return err
		}
		name = filepath.ToSlash(name)
		if name == "." {
			return nil
		}
		if prefix != "" {
			name = path.Join(prefix, name)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if header.Typeflag == tar.TypeSymlink {
			if header.Linkname, err = os.Readlink(filename); err != nil {
				return err
			}
		}
		if header.ModTime.After(clampTime) {
			header.ModTime = clampTime
		}
		if header.AccessTime.After(clampTime) {
			header.AccessTime = clampTime
		}
		if header.ChangeTime.After(clampTime) {
			header.ChangeTime = clampTime
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if header.Typeflag == tar.TypeReg {
			reader, err := os.Open(filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(tarWriter, reader); err != nil {
				_ = reader.Close()
				return err
			}
			if err := reader.Close(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := tarWriter.Close(); err != nil {
		return nil, err
	}

	body := buf.Bytes()
	return ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}, opts...)
}
