// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build release

package logx

import "log/slog"

// defaultUserLevel is lower-noise in release builds: only warnings and
// errors are printed. The --debug flag does not change this level.
var defaultUserLevel = slog.LevelWarn

