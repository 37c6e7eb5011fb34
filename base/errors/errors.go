// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides small helpers for logging and wrapping errors
// with the file/line origin of the document frame that caused them,
// following the same Log / Log1 conventions used throughout this module
// instead of ad-hoc fmt.Errorf call sites.
package errors

import (
	stderrors "errors"
	"fmt"

	"mash.dev/mash/base/logx"
)

// Origin is the source location that caused an error: the document file
// and the line of the frame's opening delimiter.
type Origin struct {
	File string
	Line int
}

func (o Origin) String() string {
	if o.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// WithOrigin is an error annotated with the document location that
// produced it. The taxonomy in the specification (parse, include,
// import, runtime, shell, dependency, keep, executable) is represented
// by the Kind string passed to the single constructor [New].
type WithOrigin struct {
	Origin Origin
	Kind   string
	Err    error
}

func (e *WithOrigin) Error() string {
	if e.Origin.File == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Origin, e.Kind, e.Err)
}

func (e *WithOrigin) Unwrap() error { return e.Err }

// New returns a *WithOrigin of the given kind.
func New(kind string, origin Origin, err error) *WithOrigin {
	return &WithOrigin{Origin: origin, Kind: kind, Err: err}
}

// Log logs the given error at the error level if it is non-nil, and
// returns it unchanged. Modeled on the teacher's errors.Log(err) idiom
// used pervasively in cosh's host library bindings. A *WithOrigin prints
// its file:line ahead of the message in a distinct color instead of
// folded into one plain string, via logx.PrintlnOriginError.
func Log(err error) error {
	if err == nil {
		return nil
	}
	var withOrigin *WithOrigin
	if stderrors.As(err, &withOrigin) {
		logx.PrintlnOriginError(withOrigin.Origin, withOrigin.Kind+":", withOrigin.Err)
		return err
	}
	logx.PrintlnError(err)
	return err
}

// Log1 logs the given error, if any, and returns the accompanying value
// unchanged. Used at call sites that want to ignore an error after
// logging it, exactly as the teacher's errors.Log1 does.
func Log1[T any](v T, err error) T {
	Log(err)
	return v
}
