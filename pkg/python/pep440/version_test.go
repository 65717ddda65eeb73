// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package pep440_test

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descware/pyplan/pkg/python/pep440"
)

func TestSortOrder(t *testing.T) {
	t.Parallel()
	testcases := map[string][]string{
		"final-releases": {
			"0.9",
			"0.9.1",
			"0.9.2",
			"0.9.10",
			"0.9.11",
			"1.0",
			"1.0.1",
			"1.1",
			"2.0",
		},
		"date-based": {
			"2012.4",
			"2012.7",
			"2012.10",
			"2013.1",
		},
		"pre-releases": {
			"4.3.dev2",
			"4.3a2",
			"4.3b2",
			"4.3rc2",
			"4.3",
			"4.3.post1",
		},
		"dev-within-suffixes": {
			"1.0.dev1",
			"1.0a1.dev1",
			"1.0a1",
			"1.0rc1.dev1",
			"1.0rc1",
			"1.0",
			"1.0.post1.dev1",
			"1.0.post1",
		},
		"epochs": {
			"2013.10",
			"2014.04",
			"1!1.0",
			"1!1.1",
		},
		"local-versions": {
			"1.0",
			"1.0+abc",
			"1.0+abc.5",
			"1.0+abc.7",
			"1.0+5",
			"1.1.dev1",
		},
	}
	for tcName, ordered := range testcases {
		ordered := ordered
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			versions := make([]*pep440.Version, len(ordered))
			for i, str := range ordered {
				var err error
				versions[i], err = pep440.ParseVersion(str)
				require.NoError(t, err, str)
			}
			shuffled := make([]*pep440.Version, len(versions))
			copy(shuffled, versions)
			rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // just a test
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			sort.SliceStable(shuffled, func(i, j int) bool {
				return shuffled[i].Cmp(*shuffled[j]) < 0
			})
			for i := range versions {
				assert.Zero(t, versions[i].Cmp(*shuffled[i]),
					"position %d: expected %q, got %q", i, versions[i], shuffled[i])
			}
		})
	}
}

func TestParseNormalization(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"1.0":             "1.0",
		"v1.0":            "1.0",
		"  1.0\n":         "1.0",
		"1.0.ALPHA1":      "1.0a1",
		"1.0-beta.2":      "1.0b2",
		"1.0pre4":         "1.0rc4",
		"1.0c4":           "1.0rc4",
		"1.0.preview4":    "1.0rc4",
		"1.0post":         "1.0.post0",
		"1.0.rev2":        "1.0.post2",
		"1.0-r2":          "1.0.post2",
		"1.0-1":           "1.0.post1",
		"1.0dev":          "1.0.dev0",
		"1.0-dev5":        "1.0.dev5",
		"1!2.0":           "1!2.0",
		"1.0+Ubuntu-1":    "1.0+ubuntu.1",
		"1.0a2.post3.dev4": "1.0a2.post3.dev4",
	}
	for in, want := range testcases {
		in, want := in, want
		t.Run(want, func(t *testing.T) {
			t.Parallel()
			ver, err := pep440.ParseVersion(in)
			require.NoError(t, err)
			assert.Equal(t, want, ver.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"",
		"bogus",
		"1.0+",
		"1.0.post1.post2",
		"6!",
	} {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			_, err := pep440.ParseVersion(in)
			assert.Error(t, err)
		})
	}
}

func TestVersionEquivalence(t *testing.T) {
	t.Parallel()
	groups := [][]string{
		{"1.0", "1.0.0", "1", "1.0.0.0"},
		{"1.0a1", "1.0.a1", "1.0-alpha1", "1.0_a1"},
		{"1.0.post0", "1.0post", "1.0rev", "1.0.r"},
	}
	for _, group := range groups {
		base := pep440.MustParseVersion(group[0])
		for _, other := range group[1:] {
			assert.Zero(t, base.Cmp(*pep440.MustParseVersion(other)),
				"%q should equal %q", group[0], other)
		}
	}
}
