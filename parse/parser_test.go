// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mash.dev/mash/frame"
	"mash.dev/mash/parse"
)

func noopReader() parse.Reader {
	return func(name string) (string, bool, error) { return "", false, nil }
}

func mapReader(files map[string]string) parse.Reader {
	return func(name string) (string, bool, error) {
		content, ok := files[name]
		return content, ok, nil
	}
}

func TestParseSingleLineFrame(t *testing.T) {
	var executed []*frame.Frame
	p := parse.New(func(f *frame.Frame) error {
		executed = append(executed, f)
		return nil
	}, noopReader(), nil)

	root, err := p.Parse("doc.mash", "A[[[ cmd ||| text ]]]C")
	require.NoError(t, err)
	require.Len(t, executed, 1)
	assert.Equal(t, "cmd ", executed[0].Commands())
	assert.Equal(t, " text ", executed[0].Content())
	assert.Equal(t, "AC", root.RawContents())
}

func TestParseNestedFramesExecuteChildBeforeParent(t *testing.T) {
	var order []string
	p := parse.New(func(f *frame.Frame) error {
		order = append(order, f.Commands())
		return nil
	}, noopReader(), nil)

	_, err := p.Parse("doc.mash", "[[[outer[[[inner]]]]]]")
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestParsePushPromotesChildText(t *testing.T) {
	p := parse.New(func(f *frame.Frame) error {
		f.Push("")
		return nil
	}, noopReader(), nil)

	root, err := p.Parse("doc.mash", "A[[[push(\"B\") |||B]]]C")
	require.NoError(t, err)
	assert.Equal(t, "ABC", root.RawContents())
}

func TestParseUnclosedFrameIsFatal(t *testing.T) {
	p := parse.New(func(f *frame.Frame) error { return nil }, noopReader(), nil)
	_, err := p.Parse("doc.mash", "[[[ oops")
	require.Error(t, err)
	var perr *parse.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseStrayCloseIsFatal(t *testing.T) {
	p := parse.New(func(f *frame.Frame) error { return nil }, noopReader(), nil)
	_, err := p.Parse("doc.mash", "hello ]]] world")
	require.Error(t, err)
	var perr *parse.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseInclude(t *testing.T) {
	p := parse.New(func(f *frame.Frame) error { return nil }, mapReader(map[string]string{
		"b.mash": "X",
	}), nil)

	root, err := p.Parse("a.mash", "[[[ include b.mash ]]]")
	require.NoError(t, err)
	assert.Equal(t, "X", root.RawContents())
}

func TestParseIncludeNotFound(t *testing.T) {
	p := parse.New(func(f *frame.Frame) error { return nil }, noopReader(), []string{"/search"})
	_, err := p.Parse("a.mash", "[[[ include missing.mash ]]]")
	require.Error(t, err)
	var nf *parse.IncludeNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestParseStartLineTracksOpeningDelimiter(t *testing.T) {
	var gotLine int
	p := parse.New(func(f *frame.Frame) error {
		gotLine = f.StartLine
		return nil
	}, noopReader(), nil)

	_, err := p.Parse("doc.mash", "line1\nline2\n[[[ x ]]]\n")
	require.NoError(t, err)
	assert.Equal(t, 3, gotLine)
}
