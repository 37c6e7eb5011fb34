// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hostlib is the standard library of host operations mash
// exposes to the embedded interpreter, per spec.md §4.3: save, recall,
// keep, imprt, shell, shell_filter, push, read, anon, unindent, strip,
// ext, the version-declaration pair, and spell_check. Every fatal
// condition the spec describes is signaled by panicking with an error
// value; yaegi recovers a panic raised by a natively-bound Go function
// during its own evaluation and returns it as a plain error, so one
// error path serves both interpreted and host-native failures. This
// mirrors the teacher's own cosh library (shell/cosh/coshlib.go), whose
// helpers log-and-return rather than panic only because cosh is itself
// the interpreted language, not a host binding called from it.
//
// Restart is the one exception: it cannot be a panic (see vm.Host's doc
// comment), so it is a plain flag the engine polls.
package hostlib

import (
	"sync"

	"github.com/Masterminds/semver/v3"

	"mash.dev/mash/archive"
	"mash.dev/mash/frame"
)

// Self is the reserved current-frame variable (spec.md §9's "magic
// variable"): rebound by the engine before each frame executes so a
// script sees Self (its yaegi-exported name) as that frame's handle,
// never a stale pointer left by a prior frame.
var Self *frame.Frame

// Library is the process-wide state backing the host operations: the
// workspace the cache operations act on, the executable-on-PATH memo
// table (spec.md §5's "memoized in a process-wide set"), and the
// component-version table require_versions/register_version consult.
type Library struct {
	Workspace *archive.Workspace

	mu               sync.Mutex
	pathCache        map[string]bool
	versions         map[string]*semver.Version
	searchDirs       []string
	restartRequested bool
}

// SetSearchDirs installs the import/include search path the @@-rewrite
// pre-hook and imprt's bare-name form resolve against.
func SetSearchDirs(dirs []string) {
	active.mu.Lock()
	defer active.mu.Unlock()
	active.searchDirs = dirs
}

// active is the single Library instance the package-level host
// operations act against. A reimplementation mindful of spec.md §9's
// "avoid process-wide globals" note would thread this explicitly, but
// yaegi's reflect.Value-based symbol export only binds package-level
// functions and variables, not bound methods closed over per-run state,
// so one process-wide Library (reset by Init on every engine run,
// including restarts) is the idiomatic shape here.
var active *Library

// mashVersion is this build's own component version, pre-registered so
// require_versions(mash=">=0.1") works out of the box.
const mashVersion = "0.1.0"

// Init installs ws as the workspace the host operations act on and
// resets the executable-PATH and version-registration caches. The
// engine calls this once per run, and again on every RestartRequest
// re-entry, since a restart must not carry state from the prior pass.
func Init(ws *archive.Workspace) *Library {
	v, err := semver.NewVersion(mashVersion)
	if err != nil {
		panic(err) // mashVersion is a compile-time constant; a parse failure is a programming error
	}
	active = &Library{
		Workspace: ws,
		pathCache: make(map[string]bool),
		versions:  map[string]*semver.Version{"mash": v},
	}
	return active
}
