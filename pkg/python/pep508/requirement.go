// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package pep508 implements PEP 508 -- Dependency specification for Python
// Software Packages.
//
// Well, the subset of PEP 508 that dependency manifests actually exercise:
// names, extras, version specifiers, URL references, and (unevaluated)
// environment markers.
//
// https://www.python.org/dev/peps/pep-0508/
package pep508

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/descware/pyplan/pkg/python/pep440"
)

// A Requirement is one parsed dependency specification, such as
//
//	requests [security,tests] >= 2.8.1, == 2.8.* ; python_version < "2.7"
type Requirement struct {
	Name      string
	Extras    []string
	Specifier pep440.Specifier

	// URL is set instead of Specifier for direct references
	// ("pip @ https://...").
	URL string

	// Marker is the raw environment-marker expression, if any.  Markers
	// are evaluated by the consuming build framework against its target
	// environment, not here.
	Marker string
}

// "The only valid characters in a name are the ASCII alphabet, ASCII
// numbers, ., -, and _", and it must begin and end with a letter or number.
var reName = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

var reSeparators = regexp.MustCompile(`[-_.]+`)

// CanonicalName normalizes a distribution name for comparison and lookup:
// lowercased, with runs of separator characters collapsed to a single
// hyphen (the PEP 503 normalization).
func CanonicalName(name string) string {
	return strings.ToLower(reSeparators.ReplaceAllLiteralString(name, "-"))
}

// ParseRequirement parses a dependency-specifier string.
func ParseRequirement(str string) (*Requirement, error) {
	var ret Requirement

	rest := strings.TrimSpace(str)
	if semi := strings.IndexByte(rest, ';'); semi >= 0 {
		ret.Marker = strings.TrimSpace(rest[semi+1:])
		rest = strings.TrimSpace(rest[:semi])
		if ret.Marker == "" {
			return nil, fmt.Errorf("pep508.ParseRequirement: empty marker: %q", str)
		}
	}

	// name
	nameEnd := 0
	for nameEnd < len(rest) && isNameRune(rest[nameEnd]) {
		nameEnd++
	}
	ret.Name = rest[:nameEnd]
	if !reName.MatchString(ret.Name) {
		return nil, fmt.Errorf("pep508.ParseRequirement: invalid distribution name in %q", str)
	}
	rest = strings.TrimSpace(rest[nameEnd:])

	// extras
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("pep508.ParseRequirement: unterminated extras in %q", str)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !reName.MatchString(extra) {
				return nil, fmt.Errorf("pep508.ParseRequirement: invalid extra %q in %q", extra, str)
			}
			ret.Extras = append(ret.Extras, CanonicalName(extra))
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	// direct reference or version specifier
	switch {
	case strings.HasPrefix(rest, "@"):
		ret.URL = strings.TrimSpace(rest[1:])
		if ret.URL == "" {
			return nil, fmt.Errorf("pep508.ParseRequirement: empty URL in %q", str)
		}
	case rest != "":
		// A parenthesized specifier is legal: "name (>=1.0)".
		if strings.HasPrefix(rest, "(") {
			if !strings.HasSuffix(rest, ")") {
				return nil, fmt.Errorf("pep508.ParseRequirement: unterminated specifier in %q", str)
			}
			rest = rest[1 : len(rest)-1]
		}
		spec, err := pep440.ParseSpecifier(rest)
		if err != nil {
			return nil, fmt.Errorf("pep508.ParseRequirement: %q: %w", str, err)
		}
		ret.Specifier = spec
	}

	return &ret, nil
}

func isNameRune(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') || c == '.' || c == '-' || c == '_'
}

// ParseRequirements parses each element of a dependency list, such as a
// manifest's project.dependencies value.
func ParseRequirements(strs []string) ([]Requirement, error) {
	ret := make([]Requirement, 0, len(strs))
	for _, str := range strs {
		req, err := ParseRequirement(str)
		if err != nil {
			return nil, err
		}
		ret = append(ret, *req)
	}
	return ret, nil
}

func (req Requirement) String() string {
	var ret strings.Builder
	ret.WriteString(req.Name)
	if len(req.Extras) > 0 {
		ret.WriteByte('[')
		ret.WriteString(strings.Join(req.Extras, ","))
		ret.WriteByte(']')
	}
	switch {
	case req.URL != "":
		ret.WriteString(" @ ")
		ret.WriteString(req.URL)
	case len(req.Specifier) > 0:
		ret.WriteString(req.Specifier.String())
	}
	if req.Marker != "" {
		ret.WriteString(" ; ")
		ret.WriteString(req.Marker)
	}
	return ret.String()
}
