// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

package fsutil_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descware/pyplan/pkg/fsutil"
	"github.com/descware/pyplan/pkg/testutil"
)

func testVFS(clock time.Time) []fsutil.FileReference {
	return []fsutil.FileReference{
		fsutil.NewInMemFileReference("pyproject.toml", 0o644, clock, []byte("[project]\n")),
		fsutil.NewInMemFileReference("capa/main.py", 0o644, clock, []byte("print()\n")),
		fsutil.NewInMemFileReference("capa/__init__.py", 0o644, clock, nil),
	}
}

func TestLayerFromFileReferences(t *testing.T) {
	t.Parallel()
	clamp := time.Unix(1000000000, 0)

	layer, err := fsutil.LayerFromFileReferences(testVFS(clamp), clamp)
	require.NoError(t, err)

	listing, err := testutil.DumpLayerListing(layer)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(listing, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "capa/__init__.py")
	assert.Contains(t, lines[1], "capa/main.py")
	assert.Contains(t, lines[2], "pyproject.toml")
}

func TestLayerReproducible(t *testing.T) {
	t.Parallel()
	clamp := time.Unix(1000000000, 0)

	// Same file set, different wall-clock timestamps: the clamp must make
	// the layers byte-identical.
	layerA, err := fsutil.LayerFromFileReferences(testVFS(clamp.Add(time.Hour)), clamp)
	require.NoError(t, err)
	layerB, err := fsutil.LayerFromFileReferences(testVFS(clamp.Add(24*time.Hour)), clamp)
	require.NoError(t, err)

	testutil.AssertEqualLayers(t, layerA, layerB)

	digestA, err := layerA.Digest()
	require.NoError(t, err)
	digestB, err := layerB.Digest()
	require.NoError(t, err)
	assert.Equal(t, digestA, digestB)
}

func TestSortFileReferences(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000000000, 0)
	vfs := []fsutil.FileReference{
		fsutil.NewInMemFileReference("a-b/x", 0o644, now, nil),
		fsutil.NewInMemFileReference("a/x", 0o644, now, nil),
		fsutil.NewInMemFileReference("a.txt", 0o644, now, nil),
	}
	fsutil.SortFileReferences(vfs)
	assert.Equal(t, "a/x", vfs[0].FullName())
	assert.Equal(t, "a-b/x", vfs[1].FullName())
	assert.Equal(t, "a.txt", vfs[2].FullName())
}
