// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package sourceset prepares a package's source file set: deciding which
// files constitute the source, and collecting them for downstream build
// steps.
package sourceset

import (
	"path"
	"strings"
)

// A Filter decides whether a path belongs in the source file set.  It is a
// pure predicate: include unless the path matches one of exactly three
// exclusion classes (build-descriptor files, hidden files or directories,
// and lock files).
type Filter struct {
	// DescriptorSuffix excludes the build tool's own descriptor files.
	DescriptorSuffix string `json:"descriptorSuffix,omitempty"`
	// HiddenPrefix excludes dotfiles/dotdirs (by base name, so it applies
	// at any depth).
	HiddenPrefix string `json:"hiddenPrefix,omitempty"`
	// LockSuffix excludes dependency lock files.
	LockSuffix string `json:"lockSuffix,omitempty"`
}

// DefaultFilter returns the standard exclusion rules.
func DefaultFilter() Filter {
	return Filter{
		DescriptorSuffix: ".pyplan.yaml",
		HiddenPrefix:     ".",
		LockSuffix:       ".lock",
	}
}

// Include reports whether the path (forward-slash separated, relative to the
// source root) belongs in the source set.  It is stateless and
// order-independent; isDir is accepted because callers evaluate it for
// directories too (to prune whole subtrees), though the rules don't
// currently distinguish.
func (f Filter) Include(p string, isDir bool) bool {
	_ = isDir
	if f.DescriptorSuffix != "" && strings.HasSuffix(p, f.DescriptorSuffix) {
		return false
	}
	if f.HiddenPrefix != "" && strings.HasPrefix(path.Base(p), f.HiddenPrefix) {
		return false
	}
	if f.LockSuffix != "" && strings.HasSuffix(p, f.LockSuffix) {
		return false
	}
	return true
}
