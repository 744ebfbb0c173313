// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil deals with moving layers and images between files, and with
// building layers from in-memory file sets.
package fsutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// PathOpener adapts a filename to a tarball.Opener.  Regular files are
// re-opened on each access; anything else (a pipe, say) is slurped once and
// replayed from memory.
func PathOpener(filename string) ociv1tarball.Opener {
	fi, err := os.Stat(filename)
	if err != nil {
		return func() (io.ReadCloser, error) {
			return nil, err
		}
	}
	if fi.Mode().IsRegular() {
		return func() (io.ReadCloser, error) {
			return os.Open(filename)
		}
	}
	body, err := os.ReadFile(filename)
	return func() (io.ReadCloser, error) {
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	}
}

// OpenImage reads an image from a tarball file.
func OpenImage(filename string) (ociv1.Image, error) {
	img, err := ociv1tarball.Image(PathOpener(filename), nil)
	if err != nil {
		return nil, &fs.PathError{Op: "open imagefile", Path: filename, Err: err}
	}
	return img, nil
}

// OpenLayer reads a layer from a layer file.
func OpenLayer(filename string) (ociv1.Layer, error) {
	layer, err := ociv1tarball.LayerFromOpener(PathOpener(filename))
	if err != nil {
		return nil, &fs.PathError{Op: "open layerfile", Path: filename, Err: err}
	}
	return layer, nil
}

// WriteLayer writes a layer's uncompressed tarball to dst.
func WriteLayer(layer ociv1.Layer, dst io.Writer) (err error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return err
	}
	defer func() {
		if _err := layerReader.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	_, err = io.Copy(dst, layerReader)
	return err
}
