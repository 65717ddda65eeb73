// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package pep440 implements PEP 440 -- Version Identification and Dependency
// Specification.
//
// https://www.python.org/dev/peps/pep-0440/
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// A Version is a parsed public version identifier, optionally with a local
// version label:
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local]
//
// Parsing normalizes the permissive "alternative" syntaxes that PEP 440
// requires tools to accept (case, alternative separators, spelled-out
// pre-release words), so two Versions that parse from equivalent strings
// compare equal.
type Version struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
	Local   []intstr.IntOrString
}

type PreRelease struct {
	L string // "a", "b", or "rc" (canonical)
	N int
}

// reVersion is the "Appendix B" regular expression from PEP 440, which
// accepts inputs that require subsequent normalization.
var reVersion = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[-_.]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?:(?:-(?P<postA>[0-9]+))|(?:[-_.]?(?P<postL>post|rev|r)[-_.]?(?P<postN>[0-9]+)?))?` +
	`(?:[-_.]?(?P<devL>dev)[-_.]?(?P<devN>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

var preCanonical = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"rc": "rc", "c": "rc", "pre": "rc", "preview": "rc",
}

// ParseVersion parses a version string, performing normalization.
func ParseVersion(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("pep440.ParseVersion: invalid version: %q", str)
	}
	group := func(name string) string {
		return match[reVersion.SubexpIndex(name)]
	}
	atoi := func(str string) (int, error) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return 0, fmt.Errorf("pep440.ParseVersion: %w", err)
		}
		return n, nil
	}

	var ver Version
	var err error
	if epoch := group("epoch"); epoch != "" {
		if ver.Epoch, err = atoi(epoch); err != nil {
			return nil, err
		}
	}
	for _, seg := range strings.Split(group("release"), ".") {
		n, err := atoi(seg)
		if err != nil {
			return nil, err
		}
		ver.Release = append(ver.Release, n)
	}
	if preL := group("preL"); preL != "" {
		pre := &PreRelease{L: preCanonical[strings.ToLower(preL)]}
		if preN := group("preN"); preN != "" {
			if pre.N, err = atoi(preN); err != nil {
				return nil, err
			}
		}
		ver.Pre = pre
	}
	// An implicit-number post-release (a bare ".post") is legal, so go by
	// whether the letter matched, not whether the number did.
	if group("postA") != "" || group("postL") != "" {
		n := 0
		if numStr := group("postA") + group("postN"); numStr != "" {
			if n, err = atoi(numStr); err != nil {
				return nil, err
			}
		}
		ver.Post = &n
	}
	if group("devL") != "" {
		n := 0
		if numStr := group("devN"); numStr != "" {
			if n, err = atoi(numStr); err != nil {
				return nil, err
			}
		}
		ver.Dev = &n
	}
	if local := group("local"); local != "" {
		for _, seg := range strings.FieldsFunc(local, func(r rune) bool {
			return r == '-' || r == '_' || r == '.'
		}) {
			ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(seg)))
		}
	}
	return &ver, nil
}

// MustParseVersion is like ParseVersion, but panics on error.  For use with
// hardcoded version strings.
func MustParseVersion(str string) *Version {
	ver, err := ParseVersion(str)
	if err != nil {
		panic(err)
	}
	return ver
}

// String renders the canonical (normalized) form of the version.
func (ver Version) String() string {
	var ret strings.Builder
	if ver.Epoch > 0 {
		fmt.Fprintf(&ret, "%d!", ver.Epoch)
	}
	for i, seg := range ver.Release {
		if i > 0 {
			ret.WriteByte('.')
		}
		fmt.Fprintf(&ret, "%d", seg)
	}
	if ver.Pre != nil {
		fmt.Fprintf(&ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(&ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(&ret, ".dev%d", *ver.Dev)
	}
	if len(ver.Local) > 0 {
		ret.WriteByte('+')
		for i, seg := range ver.Local {
			if i > 0 {
				ret.WriteByte('.')
			}
			ret.WriteString(seg.String())
		}
	}
	return ret.String()
}

// Public returns the version with any local version label stripped.
func (ver Version) Public() Version {
	ver.Local = nil
	return ver
}

// IsPreRelease reports whether the version is a pre-release or developmental
// release, which version specifiers implicitly exclude.
func (ver Version) IsPreRelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

// releaseSegment reads the release segment at index i, applying the PEP 440
// zero-padding rule for comparisons of different lengths.
func (ver Version) releaseSegment(i int) int {
	if i < len(ver.Release) {
		return ver.Release[i]
	}
	return 0
}

var preOrder = map[string]int{"a": -3, "b": -2, "rc": -1}

// preRank collapses the pre/post/dev interplay in to a comparable pair.  A
// dev release with no pre and no post segment sorts below every pre-release
// of the same release segment; a final release sorts above all of them.
func (ver Version) preRank() (int, int) {
	if ver.Pre != nil {
		return preOrder[ver.Pre.L], ver.Pre.N
	}
	if ver.Dev != nil && ver.Post == nil {
		return -4, 0
	}
	return 0, 0
}

const maxInt = int(^uint(0) >> 1)

// Cmp returns a number < 0 if version 'a' is less than version 'b', > 0 if
// 'a' is greater than 'b', or 0 if they are equal.  Only the sign is defined.
func (a Version) Cmp(b Version) int {
	if d := a.Epoch - b.Epoch; d != 0 {
		return d
	}
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if d := a.releaseSegment(i) - b.releaseSegment(i); d != 0 {
			return d
		}
	}
	aL, aN := a.preRank()
	bL, bN := b.preRank()
	if aL != bL {
		return aL - bL
	}
	if aN != bN {
		return aN - bN
	}
	if d := cmpOptInt(a.Post, b.Post, -1); d != 0 {
		return d
	}
	// "1.0" sorts above "1.0.devN", so absence of a dev-part is the
	// biggest dev-part.
	if d := cmpOptInt(a.Dev, b.Dev, maxInt); d != 0 {
		return d
	}
	return cmpLocal(a.Local, b.Local)
}

// cmpOptInt compares two optional numeric segments, treating absence as the
// given sentinel value.
func cmpOptInt(a, b *int, absent int) int {
	aN, bN := absent, absent
	if a != nil {
		aN = *a
	}
	if b != nil {
		bN = *b
	}
	switch {
	case aN < bN:
		return -1
	case aN > bN:
		return 1
	}
	return 0
}

func cmpLocal(a, b []intstr.IntOrString) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i >= len(a):
			return -1
		case i >= len(b):
			return 1
		}
		if d := cmpLocalSegment(a[i], b[i]); d != 0 {
			return d
		}
	}
	return 0
}

// Numeric local segments compare numerically, and sort above alphanumeric
// segments; alphanumeric segments compare lexically.
func cmpLocalSegment(a, b intstr.IntOrString) int {
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.Int:
		return 1
	case b.Type == intstr.Int:
		return -1
	default:
		return strings.Compare(a.StrVal, b.StrVal)
	}
}
