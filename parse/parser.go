// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements mash's document scanner: a hand-written
// rune-at-a-time reader recognizing four fixed tokens ([[[, ]]], |||
// via frame.Frame.Split, and the include directive), in the teacher's
// lexer style of explicit position/line tracking through small,
// single-purpose scan steps (see parse/lexer in the retrieval pack)
// rather than a general tokenizer.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"mash.dev/mash/frame"
)

const (
	openDelim  = "[[["
	closeDelim = "]]]"
)

// includeRe matches "[[[ include <path> ]]]" with optional surrounding
// whitespace, per spec.md §4.1's first recognized token.
var includeRe = regexp.MustCompile(`^\[\[\[\s*include\s+(\S+)\s*\]\]\]`)

// ParseError is spec.md §7's "Parse error" kind: an unclosed frame at
// EOF, or a stray close delimiter at depth 0.
type ParseError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// IncludeNotFoundError is spec.md §7's "Include-not-found" kind.
type IncludeNotFoundError struct {
	Name       string
	SearchDirs []string
}

func (e *IncludeNotFoundError) Error() string {
	return fmt.Sprintf("include %q: not found in search directories %v", e.Name, e.SearchDirs)
}

// Reader resolves an include directive's name to file content. ok is
// false when name could not be found on the search path.
type Reader func(name string) (content string, ok bool, err error)

// Parser carves a frame tree out of a document, invoking exec on each
// frame at its closing delimiter — depth-first, children before their
// parent, matching spec.md §4.1's "execute the current frame, then pop
// to its parent".
type Parser struct {
	exec       func(*frame.Frame) error
	read       Reader
	searchDirs []string
}

// New creates a Parser that calls exec on every frame as its closing
// delimiter is reached, and resolves include directives with read.
func New(exec func(*frame.Frame) error, read Reader, searchDirs []string) *Parser {
	return &Parser{exec: exec, read: read, searchDirs: searchDirs}
}

// Parse scans source (attributed to fileName in errors and frame
// origins) into a fresh root frame and returns it once every nested
// frame has executed.
func (p *Parser) Parse(fileName, source string) (*frame.Frame, error) {
	root := frame.New(nil, fileName, 1)
	line := 1
	if _, err := p.parseBody(root, fileName, source, &line, true); err != nil {
		return nil, err
	}
	return root, nil
}

// parseBody consumes source into cur until EOF (isRoot) or a matching
// close delimiter (!isRoot), returning whatever of source remains
// unconsumed by the caller (only meaningful to the recursive case).
func (p *Parser) parseBody(cur *frame.Frame, fileName, source string, line *int, isRoot bool) (string, error) {
	rest := source
	for {
		switch {
		case rest == "":
			if !isRoot {
				return rest, &ParseError{FileName: fileName, Line: *line, Msg: "unclosed frame at EOF"}
			}
			return rest, nil

		case includeRe.MatchString(rest):
			m := includeRe.FindStringSubmatch(rest)
			full, name := m[0], m[1]
			if err := p.include(cur, name); err != nil {
				return rest, err
			}
			*line += strings.Count(full, "\n")
			rest = rest[len(full):]

		case strings.HasPrefix(rest, openDelim):
			startLine := *line
			rest = rest[len(openDelim):]
			child := frame.New(cur, fileName, startLine)
			remaining, err := p.parseBody(child, fileName, rest, line, false)
			if err != nil {
				return remaining, err
			}
			rest = remaining
			child.Split()
			if err := p.exec(child); err != nil {
				return rest, err
			}

		case strings.HasPrefix(rest, closeDelim):
			if isRoot {
				return rest, &ParseError{FileName: fileName, Line: *line, Msg: "stray close delimiter at depth 0"}
			}
			return rest[len(closeDelim):], nil

		default:
			chunk, remaining := nextChunk(rest)
			*line += strings.Count(chunk, "\n")
			cur.AppendContents(chunk)
			rest = remaining
		}
	}
}

// nextChunk consumes as much literal text as possible up to the next
// '[' or ']', or exactly one character if the text starts with one of
// those runes but does not begin a recognized delimiter, per spec.md
// §4.1 step 4's "appending at least one character".
func nextChunk(s string) (chunk, rest string) {
	idx := strings.IndexAny(s, "[]")
	switch {
	case idx < 0:
		return s, ""
	case idx == 0:
		return s[:1], s[1:]
	default:
		return s[:idx], s[idx:]
	}
}

// include resolves name on the search path, then recursively parses
// and executes it as an independent document, splicing its root
// frame's raw contents into cur — "as if its content were pasted
// here" (spec.md §4.1 step 1), side effects included.
func (p *Parser) include(cur *frame.Frame, name string) error {
	content, ok, err := p.read(name)
	if err != nil {
		return err
	}
	if !ok {
		return &IncludeNotFoundError{Name: name, SearchDirs: p.searchDirs}
	}
	includedRoot, err := p.Parse(name, content)
	if err != nil {
		return err
	}
	cur.AppendContents(includedRoot.RawContents())
	return nil
}
