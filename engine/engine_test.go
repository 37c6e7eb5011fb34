// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mash.dev/mash/engine"
)

// chdir switches the process's working directory to dir for the
// duration of a test, restoring it on cleanup. The engine derives a
// run's workspace root from os.Getwd, per spec.md §3's "invocation
// directory", so exercising it end to end means actually chdir-ing.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever was written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	prev := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	fn()
	require.NoError(t, w.Close())
	os.Stdout = prev
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func writeDoc(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "doc.mash")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunMinimalPrintsAndLeavesBuildEmpty(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	doc := writeDoc(t, dir, "[[[ Println(\"hi\") ]]]\n")

	out := captureStdout(t, func() {
		require.NoError(t, engine.Run(engine.Config{Path: doc}))
	})
	assert.Equal(t, "hi\n", out)

	entries, err := os.ReadDir(filepath.Join(dir, ".mash"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunSaveReusesIdenticalArchiveEntry(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	doc := writeDoc(t, dir, `[[[ Save("x.txt") |||hello]]]`)

	require.NoError(t, engine.Run(engine.Config{Path: doc}))
	first, err := os.Stat(filepath.Join(dir, ".mash", "x.txt"))
	require.NoError(t, err)
	t0 := first.ModTime()

	require.NoError(t, engine.Run(engine.Config{Path: doc}))
	second, err := os.Stat(filepath.Join(dir, ".mash", "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, t0, second.ModTime(), "an unchanged save must copy the archived file back, not rewrite it")
}

func TestRunRecallMissesWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	doc := writeDoc(t, dir, `[[[
Save("src")
if Recall("out", "src") {
	Push("hit")
} else {
	Push("miss")
}
]]]`)

	out := captureStdout(t, func() {
		require.NoError(t, engine.Run(engine.Config{Path: doc}))
	})
	// Nothing prints the pushed text; this only confirms the recall
	// path runs to completion without raising a dependency error on a
	// workspace that has never produced "out" before.
	assert.Empty(t, out)
}

func TestRunIncludeInlinesOtherFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mash"), []byte("X"), 0o644))
	doc := writeDoc(t, dir, `[[[ include b.mash ]]][[[ Save("out.txt") |||Y]]]`)

	require.NoError(t, engine.Run(engine.Config{Path: doc, Search: []string{dir}}))
	contents, err := os.ReadFile(filepath.Join(dir, ".mash", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Y", string(contents))
}

func TestRunRestartsOnceThenTerminates(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	doc := writeDoc(t, dir, `[[[
import "os"
if _, err := os.Stat("ran-once"); err == nil {
} else {
	os.WriteFile("ran-once", nil, 0o666)
	Restart()
}
]]]`)

	require.NoError(t, engine.Run(engine.Config{Path: doc}))
	// The marker is written on the first pass only. Run returning without
	// error shows the restarted pass found it and stopped; its presence
	// here confirms the restart did not rotate the build directory away.
	_, err := os.Stat(filepath.Join(dir, ".mash", "ran-once"))
	require.NoError(t, err)
}

func TestRunCleanWithNoPathJustCleansUp(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	doc := writeDoc(t, dir, `[[[ Save("x.txt") |||hello]]]`)
	require.NoError(t, engine.Run(engine.Config{Path: doc}))

	require.NoError(t, engine.Run(engine.Config{Clean: true}))
	assert.NoDirExists(t, filepath.Join(dir, ".mash"))
	assert.NoDirExists(t, filepath.Join(dir, ".mash-archive"))
}
