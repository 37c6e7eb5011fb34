// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

// Restart raises spec.md §4.2's RestartRequest signal: the engine
// discards all state, resets the working directory, and re-parses and
// re-executes the document from the top. It is a plain flag, not a
// panic — see vm.Host's doc comment for why a typed panic cannot
// reliably cross yaegi's own Eval boundary — polled by the engine
// after every frame's commands (and any hook) finish running.
func Restart() {
	active.mu.Lock()
	defer active.mu.Unlock()
	active.restartRequested = true
}

// RestartRequested reports whether Restart has been called since the
// last Init, consuming nothing: the engine, not this package, decides
// when a pending restart takes effect.
func RestartRequested() bool {
	active.mu.Lock()
	defer active.mu.Unlock()
	return active.restartRequested
}
