// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"reflect"

	"github.com/traefik/yaegi/interp"
)

// Exports builds the interp.Exports symbol table the engine hands to
// vm.New. Its shape mirrors a `yaegi extract`-generated file such as
// the teacher's yaegicore/symbols/fmt.go (a map of name to
// reflect.Value keyed by "package/path"), hand-written here because
// mash's host surface is small and fixed rather than extracted from an
// arbitrary third-party package.
func Exports() interp.Exports {
	return interp.Exports{
		"mash.dev/mash/hostlib/hostlib": map[string]reflect.Value{
			"Self": reflect.ValueOf(&Self).Elem(),

			"Save":   reflect.ValueOf(Save),
			"Recall": reflect.ValueOf(Recall),
			"Keep":   reflect.ValueOf(Keep),
			"Imprt":  reflect.ValueOf(Imprt),

			"Shell":       reflect.ValueOf(Shell),
			"ShellFilter": reflect.ValueOf(ShellFilter),

			"Push":      reflect.ValueOf(Push),
			"Read":      reflect.ValueOf(Read),
			"Anon":      reflect.ValueOf(Anon),
			"Unindent":  reflect.ValueOf(Unindent),
			"Strip":     reflect.ValueOf(Strip),
			"Ext":       reflect.ValueOf(Ext),

			"RequireVersions": reflect.ValueOf(RequireVersions),
			"RegisterVersion": reflect.ValueOf(RegisterVersion),

			"SpellCheck": reflect.ValueOf(SpellCheck),
			"Restart":    reflect.ValueOf(Restart),

			"BeforeFrameHook": reflect.ValueOf(BeforeFrameHook),

			"CompletedProcess": reflect.ValueOf((*CompletedProcess)(nil)),
		},
	}
}
