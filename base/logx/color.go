// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	// UseColor is whether to use color in log messages. It defaults to
	// on only when standard output is an interactive terminal, detected
	// with isatty the same way most CLI tools decide whether to colorize.
	UseColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// colorProfile is the termenv color profile, queried once at package
	// initialization and again on each call to [InitColor].
	colorProfile = termenv.ColorProfile()

	// UserLevel is the minimum level that will be printed; see print.go.
	UserLevel = defaultUserLevel
)

// InitColor re-queries the terminal's color profile. It only needs to be
// called again after shelling out to a command that may have reset the
// terminal's virtual-processing state (Windows consoles in particular).
func InitColor() {
	restoreFunc, err := termenv.EnableVirtualTerminalProcessing(termenv.DefaultOutput())
	if err != nil {
		slog.Warn("logx: error enabling virtual terminal processing for colored output", "error", err)
	}
	_ = restoreFunc
	colorProfile = termenv.ColorProfile()
}

// ApplyColor applies the given ANSI color to the given string and
// returns the result. If [UseColor] is false, it returns str unchanged.
func ApplyColor(c termenv.Color, str string) string {
	if !UseColor {
		return str
	}
	return termenv.String(str).Foreground(colorProfile.Convert(c)).String()
}

// LevelColor applies the color associated with the given level to str.
func LevelColor(level slog.Level, str string) string {
	switch level {
	case slog.LevelDebug:
		return DebugColor(str)
	case slog.LevelInfo:
		return InfoColor(str)
	case slog.LevelWarn:
		return WarnColor(str)
	case slog.LevelError:
		return ErrorColor(str)
	}
	return str
}

// DebugColor applies the debug-level color (cyan) to str.
func DebugColor(str string) string { return ApplyColor(termenv.ANSICyan, str) }

// InfoColor applies the info-level color to str. Info messages are
// left uncolored so they read as the terminal's normal foreground.
func InfoColor(str string) string { return str }

// WarnColor applies the warn-level color (yellow) to str.
func WarnColor(str string) string { return ApplyColor(termenv.ANSIYellow, str) }

// ErrorColor applies the error-level color (red) to str.
func ErrorColor(str string) string { return ApplyColor(termenv.ANSIRed, str) }

// SuccessColor applies the success color (green) to str.
func SuccessColor(str string) string { return ApplyColor(termenv.ANSIGreen, str) }

// CmdColor applies the color used for shell command echoes (blue) to str.
func CmdColor(str string) string { return ApplyColor(termenv.ANSIBlue, str) }

// TitleColor applies the color used for section headers (magenta) to str.
func TitleColor(str string) string { return ApplyColor(termenv.ANSIMagenta, str) }
