// Package cmdexec provides helpers for executing external commands and
// shell snippets in a controlled manner: captured output, context
// cancellation, sudo handling and PATH lookups.
package cmdexec

import (
	"errors"
	"fmt"
	"strings"
)

// ExitCodeUnknown is reported when a process terminated without an exit code,
// e.g. when it was killed by a signal before starting.
const ExitCodeUnknown = -1

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Lines returns stdout split into lines with the trailing newline removed.
func (r *Result) Lines() []string {
	out := strings.TrimSuffix(r.Stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// ErrEmptyCommand is returned when no command name was given.
var ErrEmptyCommand = errors.New("command cannot be empty")

// ErrCommandNotFound is returned by MustWhich when a command cannot be
// resolved through PATH or as a shell builtin.
var ErrCommandNotFound = errors.New("command not found")

// Error reports a command that ran and failed. It keeps the full argv and
// the captured output so callers can log or display the failure verbatim.
type Error struct {
	Cmd    []string
	Result *Result
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  Return Code:\n    %d\n", e.Result.ExitCode)
	fmt.Fprintf(&b, "\n  Command:\n    %s\n", strings.Join(e.Cmd, " "))
	fmt.Fprintf(&b, "\n  Stderr:\n    %s\n", strings.TrimSuffix(e.Result.Stderr, "\n"))
	fmt.Fprintf(&b, "\n  Stdout:\n    %s\n", strings.TrimSuffix(e.Result.Stdout, "\n"))
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
