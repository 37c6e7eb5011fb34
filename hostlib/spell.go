// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// spellMarker is the consumed-once guard file SpellCheck uses instead
// of a retry counter, per spec.md §4.2's restart semantics ("guarded
// by presence of the marker, not a counter").
const spellMarker = ".mash-spell-done"

// spellReport is where flagged words are written for a human to read,
// since accepting corrections non-interactively is out of scope.
const spellReport = ".mash-spell-report"

// spellCheckers are tried in order; the first one found on PATH wins.
var spellCheckers = []string{"aspell", "ispell"}

// SpellCheck runs a system spelling checker over targets (paths
// relative to build), per SPEC_FULL.md §4.3. On its first pass over a
// given run it writes build/.mash-spell-report listing any flagged
// words and raises RestartRequest so the document re-runs once more;
// the marker file it leaves behind makes the second pass a no-op,
// preventing the restart from looping.
func SpellCheck(targets ...string) {
	markerPath := filepath.Join(active.Workspace.Build, spellMarker)
	if _, err := os.Stat(markerPath); err == nil {
		os.Remove(markerPath)
		return
	}

	checker := ""
	for _, c := range spellCheckers {
		if active.executableOnPath(c) {
			checker = c
			break
		}
	}
	if checker == "" {
		return
	}

	var flagged []string
	for _, target := range targets {
		path := filepath.Join(active.Workspace.Build, target)
		contents, err := os.ReadFile(path)
		if err != nil {
			panic(err)
		}
		cp := Shell(fmt.Sprintf("%s list", checker), string(contents), true)
		for _, word := range strings.Fields(cp.Stdout) {
			flagged = append(flagged, fmt.Sprintf("%s: %s", target, word))
		}
	}
	if len(flagged) == 0 {
		return
	}

	reportPath := filepath.Join(active.Workspace.Build, spellReport)
	if err := os.WriteFile(reportPath, []byte(strings.Join(flagged, "\n")+"\n"), 0o666); err != nil {
		panic(err)
	}
	if err := os.WriteFile(markerPath, nil, 0o666); err != nil {
		panic(err)
	}
	Restart()
}
