// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"mash.dev/mash/base/fsx"
)

// DependencyError is raised when recall's source list names a file
// that does not exist in Build, per spec.md §7's "Dependency missing"
// error kind.
type DependencyError struct {
	Target  string
	Missing string
	Sources []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("recall(%q): missing source %q (dependencies: %v)", e.Target, e.Missing, e.Sources)
}

// Save implements the save(target, contents) host operation: write
// contents to target in Build, unless an identical file already exists
// in Archive, in which case that archived copy is copied into Build
// instead (preserving its mtime), so a later recall continues to see
// the target as unchanged.
func (w *Workspace) Save(target string, contents []byte) error {
	dst := w.buildPath(target)
	archived := w.archivePath(target)

	if ok, _ := fsx.FileExists(archived); ok {
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return fmt.Errorf("save(%q): %w", target, err)
		}
		if err := os.WriteFile(dst+".mash-tmp", contents, 0o666); err != nil {
			return fmt.Errorf("save(%q): %w", target, err)
		}
		equal, err := fsx.FilesEqual(dst+".mash-tmp", archived)
		os.Remove(dst + ".mash-tmp")
		if err != nil {
			return fmt.Errorf("save(%q): %w", target, err)
		}
		if equal {
			return fsx.CopyFile(archived, dst)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return fmt.Errorf("save(%q): %w", target, err)
	}
	return os.WriteFile(dst, contents, 0o666)
}

// Recall implements the recall(target, *sources) host operation:
// returns true and copies Archive's target into Build, preserving its
// mtime, iff the archive entry exists and its mtime dominates every
// listed source's mtime in Build. Sources are deduplicated preserving
// first occurrence; an empty source list recalls iff the archive
// target exists (spec.md §9's chosen resolution of that open question).
func (w *Workspace) Recall(target string, sources []string) (bool, error) {
	seen := make(map[string]bool, len(sources))
	deps := make([]string, 0, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		deps = append(deps, s)
	}
	for _, dep := range deps {
		if !fsx.Exists(w.buildPath(dep)) {
			return false, &DependencyError{Target: target, Missing: dep, Sources: deps}
		}
	}

	archived := w.archivePath(target)
	ok, err := fsx.FileExists(archived)
	if err != nil {
		return false, fmt.Errorf("recall(%q): %w", target, err)
	}
	if !ok && !fsx.IsDir(archived) {
		return false, nil
	}

	archiveMod, err := fsx.LatestMod(archived)
	if err != nil {
		return false, fmt.Errorf("recall(%q): %w", target, err)
	}

	for _, dep := range deps {
		depPath := w.buildPath(dep)
		depMod, err := fsx.LatestMod(depPath)
		if err != nil {
			return false, fmt.Errorf("recall(%q): %w", target, err)
		}
		if depMod.After(archiveMod) {
			return false, nil
		}
	}

	dst := w.buildPath(target)
	if fsx.IsDir(archived) {
		if err := fsx.CopyTree(archived, dst); err != nil {
			return false, fmt.Errorf("recall(%q): %w", target, err)
		}
		// CopyTree doesn't preserve the directory's own mtime; match it
		// so repeated recalls keep seeing archiveMod as the dominant time.
		if err := os.Chtimes(dst, archiveMod, archiveMod); err != nil {
			return false, fmt.Errorf("recall(%q): %w", target, err)
		}
		return true, nil
	}
	if err := fsx.CopyFile(archived, dst); err != nil {
		return false, fmt.Errorf("recall(%q): %w", target, err)
	}
	return true, nil
}

// KeepMisconfiguredError is spec.md §7's "Keep misconfigured" error
// kind: keep_directory was not absolute.
type KeepMisconfiguredError struct {
	Dir string
}

func (e *KeepMisconfiguredError) Error() string {
	return fmt.Sprintf("keep: keep_directory %q must be absolute", e.Dir)
}

// Keep implements the keep(src, target) host operation: copy
// Build/src to Keep/target (preserving mtime for files; directories
// replace any existing target). Keep must itself be absolute (checked
// at Workspace construction, but re-verified here since a script may
// swap it at runtime in principle).
func (w *Workspace) Keep(src, target string) error {
	if !filepath.IsAbs(w.KeepDir) {
		return &KeepMisconfiguredError{Dir: w.KeepDir}
	}
	srcPath := w.buildPath(src)
	dstPath := filepath.Join(w.KeepDir, target)

	switch {
	case fsx.IsDir(srcPath):
		return fsx.CopyTree(srcPath, dstPath)
	default:
		ok, err := fsx.FileExists(srcPath)
		if err != nil {
			return fmt.Errorf("keep(%q): %w", src, err)
		}
		if !ok {
			return fmt.Errorf("keep(%q): not a file or directory", src)
		}
		return fsx.CopyFile(srcPath, dstPath)
	}
}

// ImportNotFoundError is spec.md §7's "Import-not-found" error kind.
type ImportNotFoundError struct {
	Name    string
	Search  []string
}

func (e *ImportNotFoundError) Error() string {
	return fmt.Sprintf("imprt(%q): not found in search directories %v", e.Name, e.Search)
}

// Imprt implements the imprt(*names, target, conditional) host
// operation: for each name, search searchDirs for the first hit and
// copy it into Build, named after target (single-name form only) or
// the basename of name. If a same-named file already exists in Build
// and compares byte-equal, the copy is skipped. With conditional,
// a missing source is silently skipped instead of being fatal.
func (w *Workspace) Imprt(names []string, searchDirs []string, target string, conditional bool) ([]string, error) {
	if target != "" && len(names) > 1 {
		return nil, fmt.Errorf("imprt: target %q given with %d names; target requires exactly one", target, len(names))
	}
	var imported []string
	for _, name := range names {
		hits := fsx.FindFilesOnPaths(searchDirs, name)
		if len(hits) == 0 {
			if conditional {
				continue
			}
			return imported, &ImportNotFoundError{Name: name, Search: searchDirs}
		}
		src := hits[0]
		destName := filepath.Base(name)
		if target != "" {
			destName = target
		}
		dst := w.buildPath(destName)

		if ok, _ := fsx.FileExists(dst); ok {
			if equal, err := fsx.FilesEqual(src, dst); err == nil && equal {
				imported = append(imported, destName)
				continue
			}
		}
		if err := fsx.CopyFile(src, dst); err != nil {
			return imported, fmt.Errorf("imprt(%q): %w", name, err)
		}
		imported = append(imported, destName)
	}
	return imported, nil
}
