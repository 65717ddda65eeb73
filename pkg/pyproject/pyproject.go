// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package pyproject reads the dependency manifest of a Python source tree.
//
// https://packaging.python.org/en/latest/specifications/pyproject-toml/
package pyproject

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Filename is the fixed manifest path relative to the package source root.
const Filename = "pyproject.toml"

// Pyproject is a parsed pyproject.toml.  Everything in it is optional;
// consumers are expected to go through the nil-safe accessors.
type Pyproject struct {
	BuildSystem *BuildSystem           `toml:"build-system"`
	Project     *Project               `toml:"project"`
	Tool        map[string]interface{} `toml:"tool"`
}

type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
	BackendPath  []string `toml:"backend-path"`
}

type Project struct {
	Name            string              `toml:"name"`
	Version         string              `toml:"version"`
	Description     string              `toml:"description"`
	RequiresPython  string              `toml:"requires-python"`
	Dependencies    []string            `toml:"dependencies"`
	OptionalDeps    map[string][]string `toml:"optional-dependencies"`
	Dynamic         []string            `toml:"dynamic"`
	Scripts         map[string]string   `toml:"scripts"`
	GUIScripts      map[string]string   `toml:"gui-scripts"`
	EntryPoints     map[string]map[string]string `toml:"entry-points"`
	URLs            map[string]string   `toml:"urls"`
}

// Load reads and parses the manifest at filename.  A missing or malformed
// document is an error; missing fields within it are not.
func Load(filename string) (*Pyproject, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	manifest, err := Parse(bs)
	if err != nil {
		return nil, &fs.PathError{
			Op:   "parse",
			Path: filename,
			Err:  err,
		}
	}
	return manifest, nil
}

// LoadDir reads the manifest from its fixed path under the source root.
func LoadDir(root string) (*Pyproject, error) {
	return Load(filepath.Join(root, Filename))
}

// Parse parses manifest bytes.
func Parse(bs []byte) (*Pyproject, error) {
	var manifest Pyproject
	if err := toml.Unmarshal(bs, &manifest); err != nil {
		return nil, fmt.Errorf("pyproject: %w", err)
	}
	return &manifest, nil
}

// Decode parses a manifest from a reader.
func Decode(r io.Reader) (*Pyproject, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(bs)
}

// BuildRequires returns build-system.requires, or an empty list if the table
// or the key is absent.
func (p *Pyproject) BuildRequires() []string {
	if p == nil || p.BuildSystem == nil || p.BuildSystem.Requires == nil {
		return []string{}
	}
	return p.BuildSystem.Requires
}

// Dependencies returns project.dependencies, or an empty list if the table
// or the key is absent.
func (p *Pyproject) Dependencies() []string {
	if p == nil || p.Project == nil || p.Project.Dependencies == nil {
		return []string{}
	}
	return p.Project.Dependencies
}

// Requirements returns the manifest's declared requirements as one list:
// build-system requirements first, then project dependencies, in declared
// order.  No deduplication is performed; flattening duplicates is the
// resolver's responsibility.
func (p *Pyproject) Requirements() []string {
	build := p.BuildRequires()
	deps := p.Dependencies()
	ret := make([]string, 0, len(build)+len(deps))
	ret = append(ret, build...)
	return append(ret, deps...)
}
