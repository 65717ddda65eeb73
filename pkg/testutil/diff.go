// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package testutil has helpers for tests that compare structured blobs,
// such as tarball layers, where a bare assert.Equal would be unreadable.
package testutil

import (
	"archive/tar"
	"fmt"
	"io"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/pmezard/go-difflib/difflib"
)

// TextDiff renders a unified diff between two multi-line strings.
func TextDiff(exp, act string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func eachTarEntry(layer ociv1.Layer, fn func(*tar.Header, io.Reader) error) (err error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return err
	}
	defer func() {
		if _err := layerReader.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	tarReader := tar.NewReader(layerReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(header, tarReader); err != nil {
			return err
		}
	}
}

// DumpLayerListing renders an `ls -l`-ish listing of the layer's contents.
func DumpLayerListing(layer ociv1.Layer) (string, error) {
	ret := new(strings.Builder)
	table := tabwriter.NewWriter(ret, 0, 1, 1, ' ', 0)
	err := eachTarEntry(layer, func(header *tar.Header, body io.Reader) error {
		if _, err := io.Copy(io.Discard, body); err != nil {
			return err
		}
		_, err := fmt.Fprintln(table, strings.Join([]string{
			"",
			header.FileInfo().Mode().String(),
			fmt.Sprintf("%d=%q", header.Uid, header.Uname),
			fmt.Sprintf("%d=%q", header.Gid, header.Gname),
			fmt.Sprintf("% 10d", header.Size),
			header.Name,
		}, "\t"))
		return err
	})
	if err != nil {
		return "", err
	}
	if err := table.Flush(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// DumpLayerFull renders every tar header and every byte of content, for
// exact comparison.
func DumpLayerFull(layer ociv1.Layer) (string, error) {
	ret := new(strings.Builder)
	err := eachTarEntry(layer, func(header *tar.Header, body io.Reader) error {
		fmt.Fprintf(ret, "tarHeader = %s", spewConfig.Sdump(header))
		content, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		fmt.Fprintf(ret, "tarContent = %s", spewConfig.Sdump(content))
		return nil
	})
	if err != nil {
		return "", err
	}
	return ret.String(), nil
}

// AssertEqualLayers compares two layers, failing with a listing diff first
// because it reads better than a full content diff.
func AssertEqualLayers(t *testing.T, exp, act ociv1.Layer) bool {
	t.Helper()

	expStr, err := DumpLayerListing(exp)
	if err != nil {
		t.Errorf("error dumping expected layer listing: %v", err)
		return false
	}
	actStr, err := DumpLayerListing(act)
	if err != nil {
		t.Errorf("error dumping actual layer listing: %v", err)
		return false
	}
	if expStr != actStr {
		t.Errorf("Listing diff:\n%s", TextDiff(expStr, actStr))
		return false
	}

	expStr, err = DumpLayerFull(exp)
	if err != nil {
		t.Errorf("error dumping expected layer: %v", err)
		return false
	}
	actStr, err = DumpLayerFull(act)
	if err != nil {
		t.Errorf("error dumping actual layer: %v", err)
		return false
	}
	if expStr != actStr {
		t.Errorf("Full diff:\n%s", TextDiff(expStr, actStr))
		return false
	}

	return true
}
