// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

// Save writes contents (default: the current frame's text) to target in
// build, per spec.md §4.3's save. See archive.Workspace.Save for the
// content-identical reuse rule.
func Save(target string, contents ...string) {
	c := Self.Content()
	if len(contents) > 0 {
		c = contents[0]
	}
	if err := active.Workspace.Save(target, []byte(c)); err != nil {
		panic(err)
	}
}

// Recall reports whether archive/target dominates every listed source's
// mtime in build, copying it into build when it does. A missing source
// is fatal, per spec.md §4.3.
func Recall(target string, sources ...string) bool {
	ok, err := active.Workspace.Recall(target, sources)
	if err != nil {
		panic(err)
	}
	return ok
}

// Keep copies build/src to keep_directory/target (default: src), per
// spec.md §4.3's keep.
func Keep(src string, target ...string) {
	dst := src
	if len(target) > 0 {
		dst = target[0]
	}
	if err := active.Workspace.Keep(src, dst); err != nil {
		panic(err)
	}
}

// Imprt searches import_search_directories for each name and copies
// the first hit into build, per spec.md §4.3's imprt. It returns the
// list of names actually imported (skipping conditional misses).
// import_search_directories is host-managed configuration (set once via
// SetSearchDirs), the same way Save/Recall/Keep above reach Workspace
// implicitly rather than taking it as an argument a document would have
// no way to supply.
func Imprt(names []string, target string, conditional bool) []string {
	active.mu.Lock()
	searchDirs := active.searchDirs
	active.mu.Unlock()

	imported, err := active.Workspace.Imprt(names, searchDirs, target, conditional)
	if err != nil {
		panic(err)
	}
	return imported
}
