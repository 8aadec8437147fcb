package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ShellCommand describes a shell snippet to interpret in-process.
type ShellCommand struct {
	Script string
	Dir    string
	Env    []string  // nil means inherit the current environment
	Stdin  io.Reader // nil means no input
}

// Shell interprets a POSIX shell snippet in-process, so variable expansion,
// pipes and builtins work without spawning /bin/sh. A non-zero exit status
// is reported as *Error together with the partial Result.
func Shell(ctx context.Context, cmd ShellCommand) (*Result, error) {
	if strings.TrimSpace(cmd.Script) == "" {
		return nil, ErrEmptyCommand
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(cmd.Script), "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse shell script: %w", err)
	}

	environ := cmd.Env
	if environ == nil {
		environ = os.Environ()
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(environ...)),
		interp.Dir(cmd.Dir),
		interp.StdIO(cmd.Stdin, &stdout, &stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell interpreter: %w", err)
	}

	runErr := runner.Run(ctx, file)

	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return result, nil
	}
	if status, ok := interp.IsExitStatus(runErr); ok {
		result.ExitCode = int(status)
		return result, &Error{Cmd: []string{cmd.Script}, Result: result, Err: runErr}
	}
	result.ExitCode = ExitCodeUnknown
	return result, fmt.Errorf("shell execution failed: %w", runErr)
}

// Stdout runs a shell snippet and returns its trimmed stdout. The boolean is
// false when the snippet failed, mirroring "output or nothing" call sites
// that do not care why a probe command failed.
func Stdout(ctx context.Context, script string) (string, bool) {
	result, err := Shell(ctx, ShellCommand{Script: script})
	if err != nil {
		return "", false
	}
	return strings.TrimSuffix(result.Stdout, "\n"), true
}

// StdoutLines runs a shell snippet and returns its stdout split into lines.
func StdoutLines(ctx context.Context, script string) ([]string, bool) {
	result, err := Shell(ctx, ShellCommand{Script: script})
	if err != nil {
		return nil, false
	}
	return result.Lines(), true
}
