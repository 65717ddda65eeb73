// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package sourceset

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/descware/pyplan/pkg/fsutil"
)

type fileReference struct {
	fs.FileInfo
	fullname string
	osPath   string
}

func (fr *fileReference) FullName() string { return fr.fullname }
func (fr *fileReference) Name() string     { return path.Base(fr.fullname) }
func (fr *fileReference) Open() (io.ReadCloser, error) {
	return os.Open(fr.osPath)
}

var _ fsutil.FileReference = (*fileReference)(nil)

// Collect walks the source tree rooted at dirname and returns the regular
// files that pass the filter.  Excluded directories are pruned whole.  If
// prefix is non-empty it is prepended (slash-joined) to each returned file's
// FullName.
func Collect(dirname string, filter Filter, prefix string) ([]fsutil.FileReference, error) {
	var ret []fsutil.FileReference
	err := filepath.Walk(dirname, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		rel, err := filepath.Rel(dirname, filename)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if name == "." {
			return nil
		}
		if !filter.Include(name, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if prefix != "" {
			name = path.Join(prefix, name)
		}
		ret = append(ret, &fileReference{
			FileInfo: info,
			fullname: name,
			osPath:   filename,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
