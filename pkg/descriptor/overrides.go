// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"github.com/descware/pyplan/pkg/python/pep508"
)

// An Override is a per-dependency exception to default build handling.  It
// affects the build of that one dependency only; the top-level package and
// every other dependency are unaffected.
type Override struct {
	// Pyproject marks the dependency as built from its own declared
	// build-system standard (pyproject.toml) rather than the legacy
	// setup.py path.
	Pyproject bool `json:"pyproject,omitempty"`

	// BuildRequires injects extra build-time-only inputs (typically a
	// build backend helper) needed to build the dependency from source.
	BuildRequires []string `json:"buildRequires,omitempty"`
}

// An OverrideTable maps dependency names to their overrides.  Keys are
// stored canonicalized; Lookup canonicalizes, so spelling variants of a name
// all hit the same entry.
type OverrideTable map[string]Override

// DefaultOverrides returns the overrides applied when a descriptor doesn't
// declare its own table.
//
// click ships a pyproject.toml that declares flit-core as its build backend,
// but its sdist still carries a legacy setup.py that some build frameworks
// prefer; force the pyproject path and supply the backend.
func DefaultOverrides() OverrideTable {
	return OverrideTable{
		"click": {
			Pyproject:     true,
			BuildRequires: []string{"flit-core"},
		},
	}
}

// Lookup returns the override for the named dependency, if any.
func (tbl OverrideTable) Lookup(name string) (Override, bool) {
	ovr, ok := tbl[pep508.CanonicalName(name)]
	return ovr, ok
}

// BuildRequirements returns the table's injected build requirements per
// canonical name, in the shape the resolver consumes.
func (tbl OverrideTable) BuildRequirements() map[string][]string {
	ret := make(map[string][]string, len(tbl))
	for name, ovr := range tbl {
		if len(ovr.BuildRequires) > 0 {
			ret[name] = ovr.BuildRequires
		}
	}
	return ret
}

// canonicalized returns a copy of the table with canonicalized keys.
func (tbl OverrideTable) canonicalized() OverrideTable {
	ret := make(OverrideTable, len(tbl))
	for name, ovr := range tbl {
		ret[pep508.CanonicalName(name)] = ovr
	}
	return ret
}
