// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

// shellTimeout is spec.md §4.3's "timeout 60000 s" wall-clock guard on
// a shell call.
const shellTimeout = 60000 * time.Second

// CompletedProcess is the value shell() returns: captured output plus
// the resource accounting spec.md §4.3 asks for, sourced from
// [exec.Cmd.ProcessState] the same way the standard library exposes a
// per-child getrusage delta on every platform it supports.
type CompletedProcess struct {
	Cmd      string
	ExitCode int
	Stdout   string
	Stderr   string
	UserTime time.Duration
	SysTime  time.Duration
}

// ShellError is the "Shell error" kind of spec.md §7: a subprocess
// returned non-zero.
type ShellError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *ShellError) Error() string {
	return fmt.Sprintf("shell(%q): exit status %d: %s", e.Cmd, e.ExitCode, e.Stderr)
}

// ExecutableMissingError is spec.md §7's "Executable missing" kind.
type ExecutableMissingError struct {
	Name string
}

func (e *ExecutableMissingError) Error() string {
	return fmt.Sprintf("shell: executable %q not found on PATH", e.Name)
}

// executableOnPath reports whether name resolves on PATH, memoizing
// the result in the Library's process-wide cache per spec.md §5.
func (l *Library) executableOnPath(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ok, cached := l.pathCache[name]; cached {
		return ok
	}
	_, err := exec.LookPath(name)
	ok := err == nil
	l.pathCache[name] = ok
	return ok
}

// Shell runs cmd through a system shell, per spec.md §4.3's shell. All
// three arguments are required; stdin and check have no default values.
// When check is true, the first whitespace-split token of cmd
// must resolve on PATH or the call panics with *ExecutableMissingError.
// A non-zero exit panics with *ShellError.
func Shell(cmd string, stdin string, check bool) *CompletedProcess {
	if check {
		words, err := shellwords.Parse(cmd)
		if err == nil && len(words) > 0 && !active.executableOnPath(words[0]) {
			panic(&ExecutableMissingError{Name: words[0]})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, "sh", "-c", cmd)
	c.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	runErr := c.Run()

	cp := &CompletedProcess{
		Cmd:    cmd,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if c.ProcessState != nil {
		cp.ExitCode = c.ProcessState.ExitCode()
		cp.UserTime = c.ProcessState.UserTime()
		cp.SysTime = c.ProcessState.SystemTime()
	}
	if runErr != nil && cp.ExitCode == 0 {
		cp.ExitCode = 1
	}
	if cp.ExitCode != 0 {
		panic(&ShellError{Cmd: cmd, ExitCode: cp.ExitCode, Stderr: cp.Stderr})
	}
	return cp
}

// ShellFilter runs cmd with the current frame's text as stdin and
// replaces that text with the child's stdout, per spec.md §4.3's
// shell_filter.
func ShellFilter(cmd string) {
	cp := Shell(cmd, Self.Content(), true)
	Self.SetContent(cp.Stdout)
}
