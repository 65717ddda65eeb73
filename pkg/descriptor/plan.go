// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"github.com/descware/pyplan/pkg/fsutil"
	"github.com/descware/pyplan/pkg/python/pep508"
)

// A Plan is the evaluated form of a Descriptor: the configuration object
// handed to the external build framework.
type Plan struct {
	Name    string
	Version string

	// Pyproject: build using the package's declared build-system
	// standard.
	Pyproject bool

	// Files is the post-filter source file set.
	Files []fsutil.FileReference

	// Requirements is the requirement list to hand to the resolver.
	Requirements RequirementSet

	// Imports lists modules to import-check post-install.
	Imports []string

	// Overrides maps dependency names to their build overrides.
	Overrides OverrideTable
}

// A RequirementSet is the flattened-union instruction for the resolver: the
// ordered pre-flatten requirement list, plus the instruction that the
// resolver should recursively expand and deduplicate transitive
// requirements.  The descriptor itself performs no deduplication.
type RequirementSet struct {
	Specs   []string
	Flatten bool
}

// Parsed parses the requirement specs.
func (set RequirementSet) Parsed() ([]pep508.Requirement, error) {
	return pep508.ParseRequirements(set.Specs)
}

// FileNames returns the FullNames of the post-filter source set, in file-set
// order.
func (plan *Plan) FileNames() []string {
	fsutil.SortFileReferences(plan.Files)
	names := make([]string, len(plan.Files))
	for i, file := range plan.Files {
		names[i] = file.FullName()
	}
	return names
}

// Doc is the YAML-marshalable rendering of a Plan, for `pyplan eval`.
type Doc struct {
	Name         string                 `yaml:"name"`
	Version      string                 `yaml:"version"`
	Pyproject    bool                   `yaml:"pyproject"`
	SourceFiles  []string               `yaml:"sourceFiles"`
	Requirements DocRequirements        `yaml:"requirements"`
	Imports      []string               `yaml:"imports,omitempty"`
	Overrides    map[string]DocOverride `yaml:"overrides,omitempty"`
}

type DocRequirements struct {
	Specs   []string `yaml:"specs"`
	Flatten bool     `yaml:"flatten"`
}

type DocOverride struct {
	Pyproject     bool     `yaml:"pyproject"`
	BuildRequires []string `yaml:"buildRequires,omitempty"`
}

// Doc converts the plan for serialization.
func (plan *Plan) Doc() Doc {
	doc := Doc{
		Name:        plan.Name,
		Version:     plan.Version,
		Pyproject:   plan.Pyproject,
		SourceFiles: plan.FileNames(),
		Requirements: DocRequirements{
			Specs:   plan.Requirements.Specs,
			Flatten: plan.Requirements.Flatten,
		},
		Imports: plan.Imports,
	}
	if len(plan.Overrides) > 0 {
		doc.Overrides = make(map[string]DocOverride, len(plan.Overrides))
		for name, ovr := range plan.Overrides {
			doc.Overrides[name] = DocOverride{
				Pyproject:     ovr.Pyproject,
				BuildRequires: ovr.BuildRequires,
			}
		}
	}
	return doc
}
