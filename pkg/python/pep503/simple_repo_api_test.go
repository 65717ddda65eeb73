// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package pep503_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descware/pyplan/pkg/python/pep440"
	"github.com/descware/pyplan/pkg/python/pep503"
)

func TestParseDistFilename(t *testing.T) {
	t.Parallel()
	type testcase struct {
		filename string
		project  string
		version  string
		ok       bool
	}
	testcases := map[string]testcase{
		"wheel":          {"click-8.1.7-py3-none-any.whl", "click", "8.1.7", true},
		"sdist":          {"click-8.1.7.tar.gz", "click", "8.1.7", true},
		"hyphen-name":    {"flit_core-3.9.0-py3-none-any.whl", "flit-core", "3.9.0", true},
		"zip-sdist":      {"toml-0.10.2.zip", "toml", "0.10.2", true},
		"wrong-project":  {"click-8.1.7.tar.gz", "six", "", false},
		"no-suffix":      {"click-8.1.7.txt", "click", "", false},
		"signature-file": {"click-8.1.7.tar.gz.asc", "click", "", false},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, ok := pep503.ParseDistFilename(tc.filename, tc.project)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.version, ver.String())
			}
		})
	}
}

func newTestIndex(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/simple/click/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<!DOCTYPE html><html><body>`+
			`<a href="../../files/click-7.1.2-py2.py3-none-any.whl">click-7.1.2-py2.py3-none-any.whl</a>`+
			`<a href="../../files/click-8.1.7-py3-none-any.whl" data-requires-python="&gt;=3.7">click-8.1.7-py3-none-any.whl</a>`+
			`<a href="../../files/click-8.1.7.tar.gz" data-requires-python="&gt;=3.7">click-8.1.7.tar.gz</a>`+
			`</body></html>`)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not really a wheel")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProjectVersions(t *testing.T) {
	t.Parallel()
	srv := newTestIndex(t)
	client := pep503.Client{BaseURL: srv.URL + "/simple/"}

	versions, err := client.ProjectVersions(context.Background(), "click")
	require.NoError(t, err)
	strs := make([]string, len(versions))
	for i, ver := range versions {
		strs[i] = ver.String()
	}
	assert.Equal(t, []string{"7.1.2", "8.1.7"}, strs)
}

func TestListProjectFilesRequiresPython(t *testing.T) {
	t.Parallel()
	srv := newTestIndex(t)
	client := pep503.Client{
		BaseURL: srv.URL + "/simple/",
		Python:  pep440.MustParseVersion("2.7.18"),
	}

	links, err := client.ListProjectFiles(context.Background(), "click")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "click-7.1.2-py2.py3-none-any.whl", links[0].Text)
}

func TestGetChecksum(t *testing.T) {
	t.Parallel()
	content := []byte("distribution bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(content)
	}))
	t.Cleanup(srv.Close)

	sum := sha256.Sum256(content)
	mux := http.NewServeMux()
	mux.HandleFunc("/simple/demo/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>`+
			`<a href="%s/demo-1.0.tar.gz#sha256=%s">demo-1.0.tar.gz</a>`+
			`<a href="%s/demo-1.1.tar.gz#sha256=%s">demo-1.1.tar.gz</a>`+
			`</body></html>`,
			srv.URL, hex.EncodeToString(sum[:]),
			srv.URL, hex.EncodeToString(make([]byte, sha256.Size)))
	})
	idx := httptest.NewServer(mux)
	t.Cleanup(idx.Close)

	client := pep503.Client{BaseURL: idx.URL + "/simple/"}
	links, err := client.ListProjectFiles(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, links, 2)

	good, err := links[0].Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, good)

	_, err = links[1].Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestIllegalProjectName(t *testing.T) {
	t.Parallel()
	var client pep503.Client
	_, err := client.ListProjectFiles(context.Background(), "oops name")
	assert.Error(t, err)
}
