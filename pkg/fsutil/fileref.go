// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil deals with virtual file sets and turning them in to OCI
// layers.
package fsutil

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// A FileReference is one file in a virtual file set.
type FileReference interface {
	fs.FileInfo

	// FullName follows io/fs rules: forward-slash separated, and
	// (conceptually) absolute but without the leading "/".
	FullName() string

	Open() (io.ReadCloser, error)
}

// InMemFileReference is a FileReference backed by a byte slice; mostly
// useful in tests.
type InMemFileReference struct {
	fs.FileInfo
	MFullName string
	MContent  []byte
}

func (fr *InMemFileReference) FullName() string { return fr.MFullName }
func (fr *InMemFileReference) Name() string     { return path.Base(fr.MFullName) }
func (fr *InMemFileReference) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(fr.MContent)), nil
}

var _ FileReference = (*InMemFileReference)(nil)

// NewInMemFileReference builds an InMemFileReference with synthesized file
// info.
func NewInMemFileReference(fullName string, mode fs.FileMode, modTime time.Time, content []byte) *InMemFileReference {
	return &InMemFileReference{
		FileInfo: inMemFileInfo{
			name:    path.Base(fullName),
			size:    int64(len(content)),
			mode:    mode,
			modTime: modTime,
		},
		MFullName: fullName,
		MContent:  content,
	}
}

type inMemFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi inMemFileInfo) Name() string       { return fi.name }
func (fi inMemFileInfo) Size() int64        { return fi.size }
func (fi inMemFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi inMemFileInfo) ModTime() time.Time { return fi.modTime }
func (fi inMemFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi inMemFileInfo) Sys() interface{}   { return nil }

// SortFileReferences sorts the file set by full name, part-wise.  A plain
// string compare on FullName() would be wrong because "-" < "/" < EOF.
func SortFileReferences(vfs []FileReference) {
	sort.Slice(vfs, func(i, j int) bool {
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
}
