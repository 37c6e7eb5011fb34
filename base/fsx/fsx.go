// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides filesystem utility functions used by the archive
// cache and the standard host library: existence checks, mtime
// comparisons, and mtime-preserving copies, trimmed and adapted from the
// teacher's base/fsx to the needs of a content-addressed build cache.
package fsx

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Exists reports whether path exists at all, file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// FindFilesOnPaths attempts to locate given file(s) on given list of
// paths, returning the full path to each file found (nil if none).
// Used by the include directive and imprt's search-path traversal.
func FindFilesOnPaths(paths []string, files ...string) []string {
	var res []string
	for _, path := range paths {
		for _, fn := range files {
			fp := filepath.Join(path, fn)
			ok, _ := FileExists(fp)
			if ok {
				res = append(res, fp)
			}
		}
	}
	return res
}

// LatestMod returns the latest (most recent) modification time among
// the given paths, recursing into directories. It returns the zero time
// if none of the paths exist. Used by recall to compare a cached
// target's mtime against the mtimes of its declared dependencies.
func LatestMod(paths ...string) (time.Time, error) {
	var latest time.Time
	for _, p := range paths {
		if !Exists(p) {
			continue
		}
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.ModTime().After(latest) {
				latest = info.ModTime()
			}
			return nil
		})
		if err != nil {
			return time.Time{}, err
		}
	}
	return latest, nil
}

// FilesEqual reports whether two files have identical byte content.
// Used by save and imprt to decide whether a write can be skipped in
// favor of reusing the existing file (and its mtime).
func FilesEqual(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	sa, err := fa.Stat()
	if err != nil {
		return false, err
	}
	sb, err := fb.Stat()
	if err != nil {
		return false, err
	}
	if sa.Size() != sb.Size() {
		return false, nil
	}

	const chunk = 64 * 1024
	ba := make([]byte, chunk)
	bb := make([]byte, chunk)
	for {
		na, erra := fa.Read(ba)
		nb, errb := fb.Read(bb)
		if na != nb || string(ba[:na]) != string(bb[:nb]) {
			return false, nil
		}
		if erra == io.EOF && errb == io.EOF {
			return true, nil
		}
		if erra != nil && erra != io.EOF {
			return false, erra
		}
		if errb != nil && errb != io.EOF {
			return false, errb
		}
	}
}

// CopyFile copies src to dst, preserving src's modification time the
// way Python's shutil.copy2 does, so content-identical reuse leaves a
// cache target's mtime unchanged.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	info, err := in.Stat()
	if err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyTree recursively copies src to dst, replacing any existing dst,
// preserving mtimes file by file as [CopyFile] does.
func CopyTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o777)
		}
		return CopyFile(path, target)
	})
}
