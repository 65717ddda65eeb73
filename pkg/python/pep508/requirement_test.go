// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descware/pyplan/pkg/python/pep508"
	"github.com/descware/pyplan/pkg/testutil"
)

func TestParseRequirement(t *testing.T) {
	t.Parallel()
	type testcase struct {
		in        string
		name      string
		extras    []string
		specifier string
		url       string
		marker    string
	}
	testcases := map[string]testcase{
		"bare": {
			in:   "six",
			name: "six",
		},
		"pinned": {
			in:        "click>=7.0",
			name:      "click",
			specifier: ">=7.0",
		},
		"spaced": {
			in:        "rich >= 13.0.0, < 14",
			name:      "rich",
			specifier: ">=13.0.0,<14",
		},
		"extras": {
			in:        "requests [security,tests] >= 2.8.1",
			name:      "requests",
			extras:    []string{"security", "tests"},
			specifier: ">=2.8.1",
		},
		"parenthesized": {
			in:        "zope.interface (>4.1.0)",
			name:      "zope.interface",
			specifier: ">4.1.0",
		},
		"marker": {
			in:        `backports.zoneinfo ; python_version < "3.9"`,
			name:      "backports.zoneinfo",
			marker:    `python_version < "3.9"`,
		},
		"marker-and-specifier": {
			in:        `pydantic>=2 ; platform_system != "Windows"`,
			name:      "pydantic",
			specifier: ">=2",
			marker:    `platform_system != "Windows"`,
		},
		"direct-reference": {
			in:   "pip @ https://github.com/pypa/pip/archive/1.3.1.zip",
			name: "pip",
			url:  "https://github.com/pypa/pip/archive/1.3.1.zip",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			req, err := pep508.ParseRequirement(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.name, req.Name)
			assert.Equal(t, tc.extras, req.Extras)
			assert.Equal(t, tc.specifier, req.Specifier.String())
			assert.Equal(t, tc.url, req.URL)
			assert.Equal(t, tc.marker, req.Marker)
		})
	}
}

func TestParseRequirementErrors(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"",
		"-leading-dash",
		"name[unterminated",
		"name >=",
		"name @ ",
		"name ;",
	} {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			_, err := pep508.ParseRequirement(in)
			assert.Error(t, err)
		})
	}
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"Flit-Core":          "flit-core",
		"ruamel.yaml":        "ruamel-yaml",
		"typing__extensions": "typing-extensions",
		"click":              "click",
		"Django":             "django",
	}
	for in, want := range testcases {
		assert.Equal(t, want, pep508.CanonicalName(in))
	}
}

func TestCanonicalNameIdempotent(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t,
		func(name string) bool {
			canonical := pep508.CanonicalName(name)
			return pep508.CanonicalName(canonical) == canonical
		},
		testutil.QuickConfig{},
		[]interface{}{"Flit.Core"},
		[]interface{}{"ruamel.yaml"},
		[]interface{}{"a--b__c..d"},
	)
}
