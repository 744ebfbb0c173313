// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// A FileReference is a file to be placed in a layer.
type FileReference interface {
	fs.FileInfo

	// FullName follows io/fs rules: forward slashes, absolute but without
	// the leading "/".
	FullName() string

	Open() (io.ReadCloser, error)
}

// A MemFile is an in-memory FileReference.
type MemFile struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
	body    []byte
}

// NewMemFile creates an in-memory file; fullname follows FullName rules.
func NewMemFile(fullname string, mode fs.FileMode, modTime time.Time, body []byte) *MemFile {
	return &MemFile{name: fullname, mode: mode, modTime: modTime, body: body}
}

func (f *MemFile) FullName() string { return f.name }
func (f *MemFile) Name() string {
	if i := strings.LastIndex(f.name, "/"); i >= 0 {
		return f.name[i+1:]
	}
	return f.name
}
func (f *MemFile) Size() int64        { return int64(len(f.body)) }
func (f *MemFile) Mode() fs.FileMode  { return f.mode }
func (f *MemFile) ModTime() time.Time { return f.modTime }
func (f *MemFile) IsDir() bool        { return false }
func (f *MemFile) Sys() interface{}   { return nil }
func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.body)), nil
}

// LayerFromFileReferences tars the files up in to a layer.  Timestamps newer
// than clampTime are clamped to it, for reproducible output.
func LayerFromFileReferences(
	vfs []FileReference,
	clampTime time.Time,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	sort.Slice(vfs, func(i, j int) bool {
		// Compare path-part-wise: "-" sorts before "/" in a plain
		// string compare, which would misorder siblings.
		iParts := strings.Split(vfs[i].FullName(), "/")
		jParts := strings.Split(vfs[j].FullName(), "/")
		for idx := 0; idx < len(iParts) || idx < len(jParts); idx++ {
			var iPart, jPart string
			if idx < len(iParts) {
				iPart = iParts[idx]
			}
			if idx < len(jParts) {
				jPart = jParts[idx]
			}
			if iPart != jPart {
				return iPart < jPart
			}
		}
		return false
	})

	var buf bytes.Buffer
	tarWriter := tar.NewWriter(&buf)
	for _, file := range vfs {
		header, err := tar.FileInfoHeader(file, "")
		if err != nil {
			return nil, err
		}
		header.Name = file.FullName()
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
			return nil, err
		}
		if header.Typeflag == tar.TypeReg {
			reader, err := file.Open()
			if err != nil {
				return nil, err
			}
			if _, err := io.Copy(tarWriter, reader); err != nil {
				_ = reader.Close()
				return nil, err
			}
			if err := reader.Close(); err != nil {
				return nil, err
			}
		}
	}
	if err := tarWriter.Close(); err != nil {
		return nil, err
	}

	body := buf.Bytes()
	return ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}, opts...)
}
