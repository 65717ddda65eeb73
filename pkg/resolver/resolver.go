// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package resolver turns a requirement list into a flat list of pinned
// package versions.
//
// Resolution is single-pass: requirements are expanded breadth-first, the
// specifier clauses for each package are accumulated as they are
// encountered, and each package is pinned to the best version satisfying
// its accumulated clauses.  If a later requirement invalidates an earlier
// pin, that is a conflict and an error; there is no backtracking.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/datawire/dlib/dlog"

	"github.com/descware/pyplan/pkg/python/pep440"
	"github.com/descware/pyplan/pkg/python/pep508"
)

// A Candidate is one installable version of a package, as reported by a
// Provider.
type Candidate struct {
	Name    string
	Version pep440.Version

	// Requires lists the candidate's own dependency specifiers, for
	// transitive expansion.  A Provider that cannot see dependency
	// metadata leaves this empty.
	Requires []string
}

// A Provider enumerates the installable candidates for a package.  The
// name argument is already in canonical form.
type Provider interface {
	Candidates(ctx context.Context, name string) ([]Candidate, error)
}

// A Pin is one resolved package: a canonical name bound to an exact
// version.
type Pin struct {
	Name    string
	Version pep440.Version
}

func (pin Pin) String() string {
	return pin.Name + "==" + pin.Version.String()
}

// Options configure a Resolve call.
type Options struct {
	// Flatten expands each pinned package's own requirements
	// recursively.  When false, only the packages named by the input
	// list are pinned.
	Flatten bool

	// Overrides maps canonical package names to extra requirement
	// specifiers that are injected when that package is pinned, such as
	// build-system requirements the package's own metadata omits.
	Overrides map[string][]string
}

// resolution is the in-flight state for one Resolve call.
type resolution struct {
	provider Provider
	opts     Options

	// constraints accumulates every specifier clause seen for a
	// package, across all requirements that name it.
	constraints map[string]pep440.Specifier
	pins        map[string]Pin
}

// Resolve pins every package reachable from the given requirement
// specifiers.  Requirements carrying an environment marker are not
// evaluated here and are skipped; the consuming build framework applies
// them against its own target environment.
func Resolve(ctx context.Context, provider Provider, specs []string, opts Options) ([]Pin, error) {
	reqs, err := pep508.ParseRequirements(specs)
	if err != nil {
		return nil, err
	}
	res := &resolution{
		provider:    provider,
		opts:        opts,
		constraints: make(map[string]pep440.Specifier),
		pins:        make(map[string]Pin),
	}
	return res.run(ctx, reqs)
}

// run expands requirements breadth-first, one wave at a time.  All of a
// wave's clauses merge into the constraint table before any of the wave's
// new names is pinned, so duplicate requirements arriving together narrow
// the choice instead of conflicting with it.
func (res *resolution) run(ctx context.Context, reqs []pep508.Requirement) ([]Pin, error) {
	for wave := reqs; len(wave) > 0; {
		names, err := res.merge(ctx, wave)
		if err != nil {
			return nil, err
		}
		wave = wave[:0:0]
		for _, name := range names {
			requires, err := res.pin(ctx, name)
			if err != nil {
				return nil, err
			}
			wave = append(wave, requires...)
		}
	}

	pins := make([]Pin, 0, len(res.pins))
	for _, pin := range res.pins {
		pins = append(pins, pin)
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].Name < pins[j].Name })
	return pins, nil
}

// merge folds a wave's clauses into the constraint table and returns the
// not-yet-pinned names it introduced, in first-mention order.
func (res *resolution) merge(ctx context.Context, wave []pep508.Requirement) ([]string, error) {
	var names []string
	fresh := make(map[string]bool)
	for _, req := range wave {
		if req.Marker != "" {
			dlog.Debugf(ctx, "skipping marked requirement %q", req.String())
			continue
		}
		if req.URL != "" {
			return nil, fmt.Errorf("resolve %s: direct references are not resolvable against an index", req.Name)
		}
		name := pep508.CanonicalName(req.Name)
		spec := append(res.constraints[name], req.Specifier...)
		res.constraints[name] = spec
		if pin, done := res.pins[name]; done {
			// Already pinned in an earlier wave; the new clauses
			// must not invalidate it.
			if !matches(spec, pin.Version) {
				return nil, fmt.Errorf("resolve %s: pinned %s conflicts with later requirement %q",
					name, pin.Version.String(), req.String())
			}
			continue
		}
		if !fresh[name] {
			fresh[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// pin chooses a version for name under its accumulated constraints and
// returns the requirements the choice introduces.
func (res *resolution) pin(ctx context.Context, name string) ([]pep508.Requirement, error) {
	spec := res.constraints[name]
	candidates, err := res.provider.Candidates(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	chosen, ok := pick(candidates, spec)
	if !ok {
		return nil, fmt.Errorf("resolve %s: no candidate satisfies %q", name, spec.String())
	}
	res.pins[name] = Pin{Name: name, Version: chosen.Version}
	dlog.Debugf(ctx, "pinned %s==%s", name, chosen.Version.String())

	if !res.opts.Flatten {
		return nil, nil
	}
	next := append(append([]string(nil), chosen.Requires...), res.opts.Overrides[name]...)
	requires, err := pep508.ParseRequirements(next)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	return requires, nil
}

func matches(spec pep440.Specifier, ver pep440.Version) bool {
	return len(spec) == 0 || spec.Match(ver)
}

// pick chooses the highest satisfying candidate, preferring final releases:
// a pre-release or dev release is only chosen when no final release
// satisfies the specifier.
func pick(candidates []Candidate, spec pep440.Specifier) (Candidate, bool) {
	var best, bestPre Candidate
	var haveBest, havePre bool
	for _, c := range candidates {
		if !matches(spec, c.Version) {
			continue
		}
		if c.Version.IsPreRelease() {
			if !havePre || bestPre.Version.Cmp(c.Version) < 0 {
				bestPre, havePre = c, true
			}
			continue
		}
		if !haveBest || best.Version.Cmp(c.Version) < 0 {
			best, haveBest = c, true
		}
	}
	if haveBest {
		return best, true
	}
	return bestPre, havePre
}
