// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive implements mash's three-directory workspace and the
// content-addressed build cache described in spec.md §3-4: build,
// archive, and keep, plus the save/recall/keep/imprt reuse rules.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bios-Marcel/wastebasket"

	"mash.dev/mash/base/fsx"
)

// Workspace is the build/archive/keep layout derived from an
// invocation directory, per spec.md §3.
type Workspace struct {
	Root    string // invocation directory D
	Build   string // D/.mash
	Archive string // D/.mash-archive
	KeepDir string // final-output directory, absolute
}

// New derives a Workspace rooted at root. keepDir overrides the default
// keep directory (root itself) when non-empty.
func New(root, keepDir string) (*Workspace, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("archive: resolving invocation directory: %w", err)
	}
	if keepDir == "" {
		keepDir = root
	}
	if !filepath.IsAbs(keepDir) {
		return nil, fmt.Errorf("archive: keep directory %q must be absolute", keepDir)
	}
	return &Workspace{
		Root:    root,
		Build:   filepath.Join(root, ".mash"),
		Archive: filepath.Join(root, ".mash-archive"),
		KeepDir: keepDir,
	}, nil
}

// Rotate implements spec.md §3's startup lifecycle: move every entry of
// Build into Archive (overwriting same-named entries), then recreate
// Build fresh. If Build does not yet exist, nothing is moved and Build
// is simply created.
func (w *Workspace) Rotate() error {
	if err := os.MkdirAll(w.Archive, 0o777); err != nil {
		return fmt.Errorf("archive: creating archive directory: %w", err)
	}
	if fsx.Exists(w.Build) {
		entries, err := os.ReadDir(w.Build)
		if err != nil {
			return fmt.Errorf("archive: reading build directory: %w", err)
		}
		for _, e := range entries {
			src := filepath.Join(w.Build, e.Name())
			dst := filepath.Join(w.Archive, e.Name())
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("archive: replacing archived %s: %w", e.Name(), err)
			}
			if err := os.Rename(src, dst); err != nil {
				return fmt.Errorf("archive: rotating %s into archive: %w", e.Name(), err)
			}
		}
		if err := os.RemoveAll(w.Build); err != nil {
			return fmt.Errorf("archive: clearing build directory: %w", err)
		}
	}
	return os.MkdirAll(w.Build, 0o777)
}

// Clean wipes both Build and Archive, routing the removal through the
// OS trash (wastebasket) rather than a bare os.RemoveAll, so a mistaken
// "mash -c" is recoverable. Implements the -c CLI switch of spec.md §6.
func (w *Workspace) Clean() error {
	for _, dir := range []string{w.Build, w.Archive} {
		if !fsx.Exists(dir) {
			continue
		}
		if err := wastebasket.Trash(dir); err != nil {
			return fmt.Errorf("archive: cleaning %s: %w", dir, err)
		}
	}
	return nil
}

// archivePath returns the path of target within Archive.
func (w *Workspace) archivePath(target string) string {
	return filepath.Join(w.Archive, target)
}

// buildPath returns the path of target within Build.
func (w *Workspace) buildPath(target string) string {
	return filepath.Join(w.Build, target)
}
