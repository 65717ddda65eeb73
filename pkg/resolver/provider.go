// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"

	"github.com/descware/pyplan/pkg/python/pep503"
	"github.com/descware/pyplan/pkg/python/pep592"
)

// IndexProvider enumerates candidates from a PEP 503 simple repository.
// Yanked files are not candidates.
//
// The simple repository API exposes filenames only, not dependency
// metadata, so Candidates reports versions with empty Requires; flattening
// against an IndexProvider expands only the requirements the caller (or
// the override table) supplies directly.
type IndexProvider struct {
	Client pep503.Client
}

func (p IndexProvider) Candidates(ctx context.Context, name string) ([]Candidate, error) {
	links, err := p.Client.ListProjectFiles(ctx, name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(links))
	ret := make([]Candidate, 0, len(links))
	for _, link := range links {
		if pep592.IsYanked(link) {
			continue
		}
		ver, ok := pep503.ParseDistFilename(link.Text, name)
		if !ok {
			continue
		}
		if _, dup := seen[ver.String()]; dup {
			continue
		}
		seen[ver.String()] = struct{}{}
		ret = append(ret, Candidate{Name: name, Version: *ver})
	}
	return ret, nil
}

// StaticProvider serves candidates from an in-memory table keyed by
// canonical name.
type StaticProvider map[string][]Candidate

func (p StaticProvider) Candidates(_ context.Context, name string) ([]Candidate, error) {
	return p[name], nil
}
