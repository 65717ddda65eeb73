// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"strings"
)

// A Specifier is a comma-separated series of version clauses; a candidate
// version must match every clause to match the specifier as a whole:
//
//	~= 0.9, >= 1.0, != 1.3.4.*, < 2.0
//
// The "===" arbitrary-equality escape hatch is not supported; versions must
// be PEP 440 compliant.
type Specifier []SpecifierClause

type SpecifierClause struct {
	Op      CmpOp
	Version Version
}

type CmpOp int

const (
	CmpOpCompatible CmpOp = iota // ~=
	CmpOpMatch                   // ==
	CmpOpPrefixMatch             // == V.*
	CmpOpExclude                 // !=
	CmpOpPrefixExclude           // != V.*
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
)

var cmpOpNames = map[CmpOp]string{
	CmpOpCompatible:    "~=",
	CmpOpMatch:         "==",
	CmpOpPrefixMatch:   "==",
	CmpOpExclude:       "!=",
	CmpOpPrefixExclude: "!=",
	CmpOpLE:            "<=",
	CmpOpGE:            ">=",
	CmpOpLT:            "<",
	CmpOpGT:            ">",
}

func (op CmpOp) String() string {
	str, ok := cmpOpNames[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return str
}

// ParseSpecifier parses a version specifier string.  Empty clauses (from
// stray commas) are ignored; an empty specifier matches every version.
func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.Split(str, ",")
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	minSegments := 1
	devOK := true
	localOK := false
	switch {
	case strings.HasPrefix(str, "~="):
		ret.Op = CmpOpCompatible
		str = str[2:]
		minSegments = 2
	case strings.HasPrefix(str, "==="):
		return ret, fmt.Errorf("arbitrary equality (===) is not supported: %q", str)
	case strings.HasPrefix(str, "=="), strings.HasPrefix(str, "!="):
		ret.Op = CmpOpMatch
		if str[0] == '!' {
			ret.Op = CmpOpExclude
		}
		str = str[2:]
		localOK = true
		if strings.HasSuffix(strings.TrimSpace(str), ".*") {
			ret.Op++ // prefix variant
			str = strings.TrimSuffix(strings.TrimSpace(str), ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "<="):
		ret.Op = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.Op = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.Op = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.Op = CmpOpGT
		str = str[1:]
	default:
		return ret, fmt.Errorf("invalid comparison operator: %q", str)
	}
	ver, err := ParseVersion(str)
	if err != nil {
		return ret, err
	}
	if len(ver.Release) < minSegments {
		return ret, fmt.Errorf("at least %d release segments required in %s clauses",
			minSegments, ret.Op)
	}
	if ver.Dev != nil && !devOK {
		return ret, fmt.Errorf("dev-part not permitted in %s prefix clauses", ret.Op)
	}
	if len(ver.Local) > 0 && !localOK {
		return ret, fmt.Errorf("local-part not permitted in %s clauses", ret.Op)
	}
	ret.Version = *ver
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

func (clause SpecifierClause) String() string {
	suffix := ""
	if clause.Op == CmpOpPrefixMatch || clause.Op == CmpOpPrefixExclude {
		suffix = ".*"
	}
	return clause.Op.String() + clause.Version.String() + suffix
}

// Match reports whether the candidate version matches every clause.
func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

func (clause SpecifierClause) Match(ver Version) bool {
	spec := clause.Version
	switch clause.Op {
	case CmpOpCompatible:
		// ~= V.N  is  >= V.N, == V.*  with the last release segment
		// (and any suffixes) dropped from the prefix.
		prefix := spec
		prefix.Release = prefix.Release[:len(prefix.Release)-1]
		prefix.Pre = nil
		prefix.Post = nil
		prefix.Dev = nil
		return spec.Cmp(ver) <= 0 && matchPrefix(prefix, ver)
	case CmpOpMatch:
		if len(spec.Local) == 0 {
			ver = ver.Public()
		}
		return spec.Cmp(ver) == 0
	case CmpOpExclude:
		if len(spec.Local) == 0 {
			ver = ver.Public()
		}
		return spec.Cmp(ver) != 0
	case CmpOpPrefixMatch:
		return matchPrefix(spec, ver)
	case CmpOpPrefixExclude:
		return !matchPrefix(spec, ver)
	case CmpOpLE:
		return spec.Cmp(ver.Public()) >= 0
	case CmpOpGE:
		return spec.Cmp(ver.Public()) <= 0
	case CmpOpLT:
		return spec.Cmp(ver.Public()) > 0
	case CmpOpGT:
		return spec.Cmp(ver.Public()) < 0
	default:
		panic(fmt.Errorf("invalid CmpOp: %d", clause.Op))
	}
}

// matchPrefix implements the trailing-wildcard comparison: additional
// trailing parts of the candidate beyond the spec's terminal part are
// ignored, and the parts up to it must be equal.
func matchPrefix(spec, ver Version) bool {
	spec, ver = spec.Public(), ver.Public()
	if spec.Epoch != ver.Epoch {
		return false
	}
	if spec.Pre == nil && spec.Post == nil {
		// The wildcard covers everything after the release segment.
		if len(ver.Release) > len(spec.Release) {
			ver.Release = ver.Release[:len(spec.Release)]
		}
		for i := 0; i < len(spec.Release) || i < len(ver.Release); i++ {
			if spec.releaseSegment(i) != ver.releaseSegment(i) {
				return false
			}
		}
		return true
	}
	for i := 0; i < len(spec.Release) || i < len(ver.Release); i++ {
		if spec.releaseSegment(i) != ver.releaseSegment(i) {
			return false
		}
	}
	if (spec.Pre == nil) != (ver.Pre == nil) {
		return false
	}
	if spec.Pre != nil && (spec.Pre.L != ver.Pre.L || spec.Pre.N != ver.Pre.N) {
		return false
	}
	if spec.Post == nil {
		return true // "== 1.1a1.*": pre-release was the terminal part
	}
	return ver.Post != nil && *spec.Post == *ver.Post
}
