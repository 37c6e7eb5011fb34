// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm hosts the embedded scripting runtime a mash document's
// frames execute against. Per spec.md §9, the engine treats the
// interpreter as a black box behind two operations: Eval(source,
// origin) and a shared, mutable symbol table installed once and
// threaded through every frame. This module backs that trait with
// yaegi, a Go interpreter, exactly as the teacher's cosh shell does
// (see shell/cmd/cosh/cosh.go in the retrieval pack, which drives
// github.com/traefik/yaegi/interp the same way).
package vm

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Origin is the document location — file and the frame's opening-
// delimiter line — attributed to an error so it can be reported the
// way spec.md §7 requires.
type Origin struct {
	File string
	Line int
}

func (o Origin) String() string {
	if o.File == "" {
		return "<stdin>"
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// EvalError wraps a script runtime error with its Origin.
type EvalError struct {
	Origin Origin
	Err    error
}

func (e *EvalError) Error() string { return fmt.Sprintf("%s: %v", e.Origin, e.Err) }
func (e *EvalError) Unwrap() error { return e.Err }

// Host wraps a yaegi interpreter: the shared, process-wide mutable
// context of spec.md §3, threaded through every frame's execution.
//
// Restart requests (spec.md §4.2's RestartRequest) are deliberately
// not modeled here as a panic crossing Eval's boundary: yaegi already
// recovers a panic raised by a natively-bound Go function called
// during Eval and returns it as a plain error, so a typed panic raised
// from inside hostlib's Restart() would never reach this package's own
// recover — it would already have been flattened into an opaque
// interpreter error one frame further down the call stack. The engine
// instead polls hostlib.RestartRequested() after each Eval/hook call,
// matching this spec's own design note: "Model as a tagged result
// returned from the top-level eval loop... the outer driver re-enters."
type Host struct {
	interp *interp.Interpreter
}

// New creates a Host with the Go standard library and the given extra
// symbol tables (normally just the mash host library) pre-registered,
// then dot-imports each extra package so its names become bare
// identifiers in every subsequent Eval call — matching the document
// context's "shared key-value mapping of names" model instead of
// requiring every frame to repeat an import.
func New(exports ...interp.Exports) (*Host, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("vm: registering Go standard library: %w", err)
	}
	// fmt is dot-imported unconditionally so a frame's commands can
	// write Println/Printf/Sprintf directly, matching spec.md §8's
	// literal testable-property inputs (e.g. print("hi")) once those
	// are translated into this module's concrete Go document syntax.
	if _, err := i.Eval(`import . "fmt"`); err != nil {
		return nil, fmt.Errorf("vm: dot-importing fmt: %w", err)
	}
	for _, exp := range exports {
		if err := i.Use(exp); err != nil {
			return nil, fmt.Errorf("vm: registering host symbols: %w", err)
		}
		for key := range exp {
			// Exports keys follow yaegi's "import/path/pkgname" convention
			// (see e.g. the teacher's generated yaegicore/symbols/fmt.go,
			// keyed "fmt/fmt"): the importable path is everything before
			// the final slash, the trailing segment is just the package
			// name used to build that key and plays no further role here.
			importPath := key
			if idx := lastSlash(key); idx >= 0 {
				importPath = key[:idx]
			}
			if _, err := i.Eval(fmt.Sprintf("import . %q", importPath)); err != nil {
				return nil, fmt.Errorf("vm: dot-importing %s: %w", importPath, err)
			}
		}
	}
	return &Host{interp: i}, nil
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// safeCall recovers a panic raised by native Go code this package
// invokes directly, outside yaegi's own evaluation loop — specifically
// a Lookup-returned hook, called as a plain Go function rather than via
// Eval. yaegi recovers a panic raised while it evaluates source itself
// (including calls into natively-bound functions that happen during
// that evaluation), which is how a hostlib operation's panic-on-fatal
// convention ordinarily surfaces as a plain error from Eval without
// this wrapper's help; safeCall is the fallback for the one call path
// that bypasses yaegi's loop entirely.
func (h *Host) safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}

// Eval runs source (already unindented and line-padded by the caller)
// in the host's shared context, returning a script runtime error
// wrapped with origin as an *EvalError.
func (h *Host) Eval(source string, origin Origin) error {
	return h.safeCall(func() error {
		if _, evalErr := h.interp.Eval(source); evalErr != nil {
			return &EvalError{Origin: origin, Err: evalErr}
		}
		return nil
	})
}

// Lookup resolves name in the shared context and reports whether it
// exists and is callable with no arguments, e.g. to look up an
// optional before_frame_hook/after_frame_hook.
func (h *Host) Lookup(name string) (call func() error, ok bool) {
	v, err := h.interp.Eval(name)
	if err != nil || !v.IsValid() {
		return nil, false
	}
	fn, ok := v.Interface().(func())
	if !ok {
		return nil, false
	}
	return func() error {
		return h.safeCall(func() error {
			fn()
			return nil
		})
	}, true
}
