package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/oklog/ulid/v2"
)

// Command describes a single argv-style invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   []string  // nil means inherit the current environment
	Stdin io.Reader // nil means no input

	// Tee mirrors combined output to the given writers while still
	// capturing it in the Result.
	TeeStdout io.Writer
	TeeStderr io.Writer

	// Logger receives a debug record per execution. Defaults to slog.Default.
	Logger *slog.Logger
}

// Run executes the command, capturing stdout and stderr. A non-zero exit
// status is reported as *Error together with the partial Result.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Name == "" {
		return nil, ErrEmptyCommand
	}

	path, err := exec.LookPath(cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to find command %q: %w", cmd.Name, err)
	}

	// #nosec G204 -- argv execution without shell interpretation
	execCmd := exec.CommandContext(ctx, path, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = cmd.Env
	execCmd.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr
	if cmd.TeeStdout != nil {
		execCmd.Stdout = io.MultiWriter(&stdout, cmd.TeeStdout)
	}
	if cmd.TeeStderr != nil {
		execCmd.Stderr = io.MultiWriter(&stderr, cmd.TeeStderr)
	}

	logger := cmd.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := ulid.Make().String()
	start := time.Now()

	runErr := execCmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: ExitCodeUnknown,
	}
	if execCmd.ProcessState != nil {
		result.ExitCode = execCmd.ProcessState.ExitCode()
	}

	logger.Debug("command finished",
		"run_id", runID,
		"cmd", cmd.Name,
		"args", cmd.Args,
		"exit_code", result.ExitCode,
		"duration", time.Since(start))

	if runErr != nil {
		return result, &Error{Cmd: append([]string{cmd.Name}, cmd.Args...), Result: result, Err: runErr}
	}
	return result, nil
}

// Exec is a convenience wrapper around Run for the common case of a command
// with arguments and inherited environment.
func Exec(ctx context.Context, name string, args ...string) (*Result, error) {
	return Run(ctx, Command{Name: name, Args: args})
}
