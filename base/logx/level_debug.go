// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !release

package logx

import "log/slog"

// defaultUserLevel shows info, warning and error messages in ordinary
// builds (debug messages are hidden); release builds use the quieter
// default in level_release.go.
var defaultUserLevel = slog.LevelInfo
