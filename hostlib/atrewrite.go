// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"path/filepath"
	"regexp"
)

// atToken matches mash's import-and-rename token, spec.md §6's
// "@@path — import-and-rename token".
var atToken = regexp.MustCompile(`@@([A-Za-z0-9_./+-]*)`)

// BeforeFrameHook is mash's default before_frame_hook, installed by
// the engine ahead of every other shared-context definition so a
// document can still override it (spec.md §9 models hooks as plain
// names in the shared context). It rewrites every @@path occurrence in
// the current frame's commands and content by importing path and
// substituting its basename, per spec.md §4.3's @@-rewrite.
func BeforeFrameHook() {
	Self.SetCommands(rewriteAtTokens(Self.Commands()))
	Self.SetContent(rewriteAtTokens(Self.Content()))
}

func rewriteAtTokens(s string) string {
	return atToken.ReplaceAllStringFunc(s, func(match string) string {
		path := atToken.FindStringSubmatch(match)[1]
		if path == "" {
			return match
		}
		imported := Imprt([]string{path}, "", false)
		if len(imported) == 0 {
			return match
		}
		return filepath.Base(imported[0])
	})
}
