// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package descriptor implements the declarative build descriptor: for one
// named package and version it declares which files constitute the source,
// where the dependency manifest lives, how the manifest becomes a resolvable
// requirement list, and any per-dependency build overrides.
//
// A descriptor is a pure declaration: evaluating it reads the source tree
// and manifest exactly once and produces a Plan, with no retries and no
// partial-success states.
package descriptor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"
	"sigs.k8s.io/yaml"

	"github.com/descware/pyplan/pkg/fsutil"
	"github.com/descware/pyplan/pkg/pyproject"
	"github.com/descware/pyplan/pkg/sourceset"
)

// FileSuffix is the descriptor-file naming convention.  The source filter
// excludes descriptor files from the source set by this suffix.
const FileSuffix = ".pyplan.yaml"

// A Descriptor declares how to construct a distributable artifact for one
// package from its source tree and dependency manifest.
type Descriptor struct {
	// Name and Version are the declared identity: literal and fixed.
	Name    string `json:"name"`
	Version string `json:"version"`

	// Source configures the source file set.
	Source Source `json:"source,omitempty"`

	// Manifest is the dependency-manifest path relative to the source
	// root.  Defaults to "pyproject.toml".
	Manifest string `json:"manifest,omitempty"`

	// Pyproject marks the package as built using its declared
	// build-system standard.
	Pyproject bool `json:"pyproject,omitempty"`

	// Imports lists module names to import-check after installation.
	Imports []string `json:"imports,omitempty"`

	// Overrides is the per-dependency override table.  nil means
	// DefaultOverrides; an empty table disables overrides entirely.
	Overrides OverrideTable `json:"overrides,omitempty"`
}

type Source struct {
	// Root is the source tree root; relative paths are resolved against
	// the descriptor file's directory.
	Root string `json:"root,omitempty"`

	// Filter optionally replaces individual default exclusion rules.
	Filter *sourceset.Filter `json:"filter,omitempty"`
}

// LoadFile reads a descriptor from a YAML file.  Unknown fields are an
// error; a typo'd field silently doing nothing would be worse.
func LoadFile(filename string) (*Descriptor, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var desc Descriptor
	if err := yaml.Unmarshal(bs, &desc, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if desc.Name == "" || desc.Version == "" {
		return nil, fmt.Errorf("%s: descriptor must declare both name and version", filename)
	}
	if !filepath.IsAbs(desc.Source.Root) {
		desc.Source.Root = filepath.Join(filepath.Dir(filename), desc.Source.Root)
	}
	return &desc, nil
}

func (desc *Descriptor) filter() sourceset.Filter {
	if desc.Source.Filter != nil {
		return *desc.Source.Filter
	}
	return sourceset.DefaultFilter()
}

func (desc *Descriptor) manifestPath() string {
	manifest := desc.Manifest
	if manifest == "" {
		manifest = pyproject.Filename
	}
	return filepath.Join(desc.Source.Root, filepath.FromSlash(manifest))
}

func (desc *Descriptor) overrides() OverrideTable {
	if desc.Overrides == nil {
		return DefaultOverrides()
	}
	return desc.Overrides.canonicalized()
}

// CollectSource collects the filtered source file set, optionally
// prefixing every filename with prefix ("usr/lib/app" style, no leading
// slash).
func (desc *Descriptor) CollectSource(prefix string) ([]fsutil.FileReference, error) {
	return sourceset.Collect(desc.Source.Root, desc.filter(), prefix)
}

// Evaluate evaluates the descriptor: collect the filtered source set, parse
// the manifest, and derive the requirement list.  A malformed manifest
// aborts evaluation before any build step.
func (desc *Descriptor) Evaluate(ctx context.Context) (*Plan, error) {
	files, err := desc.CollectSource("")
	if err != nil {
		return nil, err
	}

	manifest, err := pyproject.Load(desc.manifestPath())
	if err != nil {
		return nil, err
	}
	if manifest.Project != nil && manifest.Project.Version != "" &&
		manifest.Project.Version != desc.Version {
		dlog.Warnf(ctx, "descriptor declares version %s but manifest declares %s",
			desc.Version, manifest.Project.Version)
	}

	plan := &Plan{
		Name:      desc.Name,
		Version:   desc.Version,
		Pyproject: desc.Pyproject,
		Files:     files,
		Requirements: RequirementSet{
			Specs:   manifest.Requirements(),
			Flatten: true,
		},
		Imports:   append([]string(nil), desc.Imports...),
		Overrides: desc.overrides(),
	}
	dlog.Debugf(ctx, "evaluated descriptor %s-%s: %d source files, %d requirements",
		plan.Name, plan.Version, len(plan.Files), len(plan.Requirements.Specs))
	return plan, nil
}

// IsDescriptorFilename reports whether the filename follows the descriptor
// naming convention.
func IsDescriptorFilename(filename string) bool {
	return strings.HasSuffix(filename, FileSuffix)
}
