// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine ties the parser, the embedded interpreter, the host
// library, and the build cache into the document execution pipeline of
// spec.md §4.2, including its restart re-entry loop.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"mash.dev/mash/archive"
	baseerrors "mash.dev/mash/base/errors"
	"mash.dev/mash/frame"
	"mash.dev/mash/hostlib"
	"mash.dev/mash/parse"
	"mash.dev/mash/vm"
)

// errRestart is the sentinel the parser's own error-propagation carries
// out of a half-finished parse/exec walk when a frame calls restart(),
// per spec.md §9's "tagged result ... the outer driver re-enters" note.
var errRestart = errors.New("engine: restart requested")

// Run executes the document at cfg.Path (or stdin, if empty) to
// completion, re-entering from scratch every time a frame requests a
// restart, with no retry counter: spec.md §4.2 guards restart loops
// with consumed-once markers such as hostlib's spell-check report, not
// an iteration budget.
//
// The workspace's build/archive rotation (spec.md §3's startup
// lifecycle) happens exactly once here, before the loop: a restart only
// "resets the current working directory to the invocation directory and
// re-runs" (spec.md §4.2) — it does not start a fresh build directory,
// since a restarted frame typically depends on something (e.g. a marker
// file) it left behind in build on the pass that requested the restart.
func Run(cfg Config) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("engine: resolving invocation directory: %w", err)
	}

	keepDir := cfg.Keep
	if keepDir != "" {
		expanded, err := homedir.Expand(keepDir)
		if err != nil {
			return fmt.Errorf("engine: expanding keep directory %q: %w", keepDir, err)
		}
		keepDir = expanded
	}

	ws, err := archive.New(cwd, keepDir)
	if err != nil {
		return err
	}

	if cfg.Clean {
		if err := ws.Clean(); err != nil {
			return err
		}
		if cfg.Path == "" {
			return nil
		}
	}
	if err := ws.Rotate(); err != nil {
		return err
	}

	searchDirs := make([]string, len(cfg.Search))
	for i, d := range cfg.Search {
		expanded, err := homedir.Expand(d)
		if err != nil {
			return fmt.Errorf("engine: expanding search directory %q: %w", d, err)
		}
		searchDirs[i] = expanded
	}

	for {
		err := runOnce(cwd, ws, searchDirs, cfg.Path)
		if errors.Is(err, errRestart) {
			continue
		}
		return err
	}
}

func runOnce(cwd string, ws *archive.Workspace, searchDirs []string, path string) error {
	hostlib.Init(ws)
	hostlib.SetSearchDirs(searchDirs)

	host, err := vm.New(hostlib.Exports())
	if err != nil {
		return err
	}
	// Installed before the document runs so a frame may still override
	// before_frame_hook by redefining the name in the shared context.
	if err := host.Eval("before_frame_hook := BeforeFrameHook", vm.Origin{}); err != nil {
		return fmt.Errorf("engine: installing default pre-frame hook: %w", err)
	}

	source, fileName, err := readInput(path, searchDirs)
	if err != nil {
		return err
	}

	if err := os.Chdir(ws.Build); err != nil {
		return fmt.Errorf("engine: entering build directory: %w", err)
	}
	defer os.Chdir(cwd)

	p := parse.New(execFrame(host), parse.FileReader(searchDirs), searchDirs)
	if _, err := p.Parse(fileName, source); err != nil {
		return wrapParseError(err)
	}
	return nil
}

// wrapParseError folds a *parse.ParseError's file/line into a
// *baseerrors.WithOrigin, so it reports through the same origin-colored
// path as a runtime error instead of the plain "file:line: message"
// string ParseError.Error formats on its own. Any other error
// (including errRestart, and a *baseerrors.WithOrigin already produced
// by execFrame) passes through unchanged.
func wrapParseError(err error) error {
	var pe *parse.ParseError
	if errors.As(err, &pe) {
		return baseerrors.New("parse", baseerrors.Origin{File: pe.FileName, Line: pe.Line}, errors.New(pe.Msg))
	}
	return err
}

// readInput returns a document's source and the name it should be
// attributed to. An empty path means read the document from stdin,
// attributed to "<stdin>" in error origins.
func readInput(path string, searchDirs []string) (source, fileName string, err error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("engine: reading stdin: %w", err)
		}
		return string(b), "<stdin>", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("engine: reading %s: %w", path, err)
	}
	return string(b), path, nil
}

// execFrame builds the per-frame callback the parser invokes at each
// frame's closing delimiter, implementing spec.md §4.2 steps 3-7: pad
// the already-split/unindented commands to the author's source line,
// bind the current-frame variable, run the pre-hook, evaluate the
// commands, then run the post-hook — checking for a pending restart
// after each of those three script-visible steps.
func execFrame(host *vm.Host) func(*frame.Frame) error {
	return func(f *frame.Frame) error {
		hostlib.Self = f

		if hook, ok := host.Lookup("before_frame_hook"); ok {
			if err := hook(); err != nil {
				return err
			}
			if hostlib.RestartRequested() {
				return errRestart
			}
		}

		padded := frame.Pad(f.Commands(), f.StartLine-1)
		if err := host.Eval(padded, vm.Origin{File: f.FileName, Line: f.StartLine}); err != nil {
			return wrapEvalError(err)
		}
		if hostlib.RestartRequested() {
			return errRestart
		}

		if hook, ok := host.Lookup("after_frame_hook"); ok {
			if err := hook(); err != nil {
				return err
			}
			if hostlib.RestartRequested() {
				return errRestart
			}
		}

		return nil
	}
}

// wrapEvalError folds a *vm.EvalError's file/line into a
// *baseerrors.WithOrigin of kind "runtime", the same representation
// wrapParseError produces for a parse-time failure, so cmd/mash's error
// reporting has a single origin-bearing type to special-case regardless
// of which stage of the pipeline failed.
func wrapEvalError(err error) error {
	var ee *vm.EvalError
	if errors.As(err, &ee) {
		return baseerrors.New("runtime", baseerrors.Origin{File: ee.Origin.File, Line: ee.Origin.Line}, ee.Err)
	}
	return err
}
