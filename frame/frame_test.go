// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mash.dev/mash/frame"
)

func TestSplit(t *testing.T) {
	f := frame.New(nil, "doc.mash", 1)
	f.AppendContents("save(\"x\") ||| hello world")
	f.Split()
	assert.Equal(t, "save(\"x\") ", f.Commands())
	assert.Equal(t, " hello world", f.Content())
}

func TestSplitNoSeparator(t *testing.T) {
	f := frame.New(nil, "doc.mash", 1)
	f.AppendContents("print(\"hi\")")
	f.Split()
	assert.Equal(t, "print(\"hi\")", f.Commands())
	assert.Equal(t, "", f.Content())
}

func TestSplitIdempotent(t *testing.T) {
	f := frame.New(nil, "doc.mash", 1)
	f.AppendContents("a ||| b")
	f.Split()
	f.SetCommands("mutated")
	f.Split() // should not reset Commands back to "a"
	assert.Equal(t, "mutated", f.Commands())
}

func TestPushIntoParent(t *testing.T) {
	root := frame.New(nil, "doc.mash", 1)
	root.AppendContents("A")
	child := frame.New(root, "doc.mash", 1)
	child.AppendContents("ignored |||B")
	child.Split()
	child.Push("")
	root.AppendContents("C")
	assert.Equal(t, "ABC", root.RawContents())
}

func TestPushNoOpAtRoot(t *testing.T) {
	root := frame.New(nil, "doc.mash", 1)
	root.Push("text") // must not panic
	assert.Equal(t, "", root.RawContents())
}

func TestUnindent(t *testing.T) {
	in := "  line one\n  line two\n    nested"
	out := frame.Unindent(in)
	assert.Equal(t, "line one\nline two\n  nested", out)
}

func TestUnindentNoPrefix(t *testing.T) {
	in := "line one\n  line two"
	assert.Equal(t, in, frame.Unindent(in))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "\n\n\nx", frame.Pad("x", 3))
	assert.Equal(t, "x", frame.Pad("x", 0))
}
