// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame defines the Frame type: a node of the tree the parser
// carves out of a document, and the handle embedded scripts use to read
// and mutate the frame that is currently executing.
package frame

import "strings"

// Separator splits a frame's raw contents into its leading commands and
// trailing text.
const Separator = "|||"

// Frame is a single [[[ ... ]]] region of the input document. Parent is
// a weak back-reference; it is nil for the root frame. Frames never
// outlive their root: nothing outside the parser/engine retains one
// past the end of a run.
type Frame struct {
	Parent    *Frame
	FileName  string
	StartLine int

	raw strings.Builder // contents accumulated while this frame is open

	split    bool
	commands string
	text     string
}

// New creates a frame with the given parent (nil for the root).
func New(parent *Frame, fileName string, startLine int) *Frame {
	return &Frame{Parent: parent, FileName: fileName, StartLine: startLine}
}

// AppendContents appends literal text to the frame's raw, unsplit
// contents. Called by the parser as it scans, and by Push to inject a
// child frame's rendered text into its parent.
func (f *Frame) AppendContents(s string) {
	f.raw.WriteString(s)
}

// RawContents returns the frame's accumulated contents before the
// command/text split.
func (f *Frame) RawContents() string {
	return f.raw.String()
}

// Split divides RawContents at the first occurrence of [Separator] into
// Commands (re-indented to column 0) and Text. If the separator is not
// present, the whole of RawContents becomes Commands and Text is empty.
// It is idempotent: calling it more than once has no further effect.
func (f *Frame) Split() {
	if f.split {
		return
	}
	f.split = true
	raw := f.raw.String()
	if idx := strings.Index(raw, Separator); idx >= 0 {
		f.commands = Unindent(raw[:idx])
		f.text = raw[idx+len(Separator):]
	} else {
		f.commands = Unindent(raw)
		f.text = ""
	}
}

// Commands returns the frame's script, already unindented. Valid only
// after Split.
func (f *Frame) Commands() string { return f.commands }

// SetCommands overwrites the frame's script, e.g. from the @@-rewrite
// pre-hook.
func (f *Frame) SetCommands(s string) { f.commands = s }

// Content returns the frame's text payload, the part embedded scripts
// read and mutate as "self.content". Valid only after Split.
func (f *Frame) Content() string { return f.text }

// SetContent overwrites the frame's text payload. Host operations such
// as shell_filter, unindent, and strip call this.
func (f *Frame) SetContent(s string) { f.text = s }

// GetParent returns the frame's parent, or nil at the root. Exposed as
// a method (rather than a field access) because it is bound directly
// into the embedded interpreter's symbol table.
func (f *Frame) GetParent() *Frame { return f.Parent }

// Push appends text (or, if text is empty, the frame's own Content) to
// the parent frame's raw contents. It is a no-op at the root, since the
// root has no parent to inject into.
func (f *Frame) Push(text string) {
	if f.Parent == nil {
		return
	}
	if text == "" {
		text = f.text
	}
	f.Parent.AppendContents(text)
}

// Unindent strips the common leading whitespace of s: the run of tabs
// or spaces before the first non-whitespace character of the first
// non-blank line, removed from the start of every line. Used both to
// normalize a frame's Commands (spec §4.2 step 2) and by the unindent()
// host operation on a frame's Content.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := ""
	found := false
	for _, ln := range lines {
		trimmed := strings.TrimLeft(ln, " \t")
		if trimmed != "" {
			prefix = ln[:len(ln)-len(trimmed)]
			found = true
			break
		}
	}
	if !found || prefix == "" {
		return s
	}
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = strings.TrimPrefix(ln, prefix)
	}
	return strings.Join(out, "\n")
}

// Pad prepends n newlines to s. The engine uses this to offset a
// frame's commands by StartLine-1 lines before handing them to the
// embedded interpreter, so runtime errors are reported at the author's
// source line instead of line 1 of the assembled script.
func Pad(s string, n int) string {
	if n <= 0 {
		return s
	}
	return strings.Repeat("\n", n) + s
}
