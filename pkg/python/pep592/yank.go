// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package pep592 implements PEP 592 -- Adding "Yank" Support to the Simple
// API.
//
// https://www.python.org/dev/peps/pep-0592/
package pep592

import (
	"github.com/descware/pyplan/pkg/python/pep503"
)

// IsYanked reports whether the index has marked the file as yanked.  Yanked
// files should not be chosen by a resolver unless the version is pinned
// exactly.
func IsYanked(l pep503.Link) bool {
	_, yanked := l.DataAttrs["data-yanked"]
	return yanked
}
