// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mash.dev/mash/archive"
)

func newWorkspace(t *testing.T) *archive.Workspace {
	t.Helper()
	root := t.TempDir()
	w, err := archive.New(root, "")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(w.Build, 0o777))
	require.NoError(t, os.MkdirAll(w.Archive, 0o777))
	return w
}

func TestSaveWritesNewTarget(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, w.Save("out.txt", []byte("hello")))
	got, err := os.ReadFile(filepath.Join(w.Build, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSaveReusesIdenticalArchiveEntry(t *testing.T) {
	w := newWorkspace(t)
	archived := filepath.Join(w.Archive, "out.txt")
	require.NoError(t, os.WriteFile(archived, []byte("hello"), 0o666))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(archived, past, past))

	require.NoError(t, w.Save("out.txt", []byte("hello")))

	info, err := os.Stat(filepath.Join(w.Build, "out.txt"))
	require.NoError(t, err)
	assert.WithinDuration(t, past, info.ModTime(), time.Second)
}

func TestRecallMissingArchiveEntry(t *testing.T) {
	w := newWorkspace(t)
	ok, err := w.Recall("missing.txt", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecallDominatesSources(t *testing.T) {
	w := newWorkspace(t)
	src := filepath.Join(w.Build, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("s"), 0o666))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, old, old))

	archived := filepath.Join(w.Archive, "out.txt")
	require.NoError(t, os.WriteFile(archived, []byte("out"), 0o666))

	ok, err := w.Recall("out.txt", []string{"src.txt"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecallStaleWhenSourceNewer(t *testing.T) {
	w := newWorkspace(t)
	archived := filepath.Join(w.Archive, "out.txt")
	require.NoError(t, os.WriteFile(archived, []byte("out"), 0o666))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(archived, old, old))

	src := filepath.Join(w.Build, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("s"), 0o666))

	ok, err := w.Recall("out.txt", []string{"src.txt"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecallMissingSourceIsFatal(t *testing.T) {
	w := newWorkspace(t)
	archived := filepath.Join(w.Archive, "out.txt")
	require.NoError(t, os.WriteFile(archived, []byte("out"), 0o666))

	_, err := w.Recall("out.txt", []string{"nope.txt"})
	require.Error(t, err)
	var depErr *archive.DependencyError
	assert.ErrorAs(t, err, &depErr)
	assert.Equal(t, "nope.txt", depErr.Missing)
}

func TestKeepRequiresAbsoluteDir(t *testing.T) {
	root := t.TempDir()
	w, err := archive.New(root, "")
	require.NoError(t, err)
	w.KeepDir = "relative/dir"
	require.NoError(t, os.MkdirAll(w.Build, 0o777))
	require.NoError(t, os.WriteFile(filepath.Join(w.Build, "a.txt"), []byte("a"), 0o666))

	err = w.Keep("a.txt", "a.txt")
	require.Error(t, err)
	var misconfigured *archive.KeepMisconfiguredError
	assert.ErrorAs(t, err, &misconfigured)
}

func TestKeepCopiesFile(t *testing.T) {
	w := newWorkspace(t)
	keepDir := t.TempDir()
	w.KeepDir = keepDir
	require.NoError(t, os.WriteFile(filepath.Join(w.Build, "a.txt"), []byte("a"), 0o666))

	require.NoError(t, w.Keep("a.txt", "out/a.txt"))
	got, err := os.ReadFile(filepath.Join(keepDir, "out", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))
}

func TestImprtCopiesFirstHit(t *testing.T) {
	w := newWorkspace(t)
	searchDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(searchDir, "lib.txt"), []byte("lib"), 0o666))

	names, err := w.Imprt([]string{"lib.txt"}, []string{searchDir}, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.txt"}, names)
	got, err := os.ReadFile(filepath.Join(w.Build, "lib.txt"))
	require.NoError(t, err)
	assert.Equal(t, "lib", string(got))
}

func TestImprtConditionalSkipsMiss(t *testing.T) {
	w := newWorkspace(t)
	names, err := w.Imprt([]string{"nope.txt"}, []string{t.TempDir()}, "", true)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestImprtFatalMiss(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.Imprt([]string{"nope.txt"}, []string{t.TempDir()}, "", false)
	require.Error(t, err)
	var notFound *archive.ImportNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
