// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"mash.dev/mash/frame"
)

// Push appends text (default: the current frame's own text) to the
// parent frame's contents, per spec.md §4.3's push.
func Push(text ...string) {
	t := ""
	if len(text) > 0 {
		t = text[0]
	}
	Self.Push(t)
}

// Read appends fname's contents to the current frame's text, per
// spec.md §4.3's read.
func Read(fname string) {
	b, err := os.ReadFile(fname)
	if err != nil {
		panic(err)
	}
	Self.SetContent(Self.Content() + string(b))
}

// Anon returns the first 7 hex characters of the SHA-1 of content
// (default: the current frame's text), per spec.md §4.3's anon.
func Anon(content ...string) string {
	c := Self.Content()
	if len(content) > 0 {
		c = content[0]
	}
	sum := sha1.Sum([]byte(c))
	return hex.EncodeToString(sum[:])[:7]
}

// Unindent reindents the current frame's text with the same algorithm
// frame.Unindent applies to a frame's commands, per spec.md §4.3.
func Unindent() {
	Self.SetContent(frame.Unindent(Self.Content()))
}

// Strip strips leading and trailing whitespace from the current
// frame's text, per spec.md §4.3's strip.
func Strip() {
	Self.SetContent(strings.TrimSpace(Self.Content()))
}

// Ext replaces fname's extension with ext, per spec.md §4.3's ext.
func Ext(fname, ext string) string {
	base := strings.TrimSuffix(fname, filepath.Ext(fname))
	if ext == "" {
		return base
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}
