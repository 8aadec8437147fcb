package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		cmd        Command
		wantErr    bool
		wantStdout string
	}{
		{
			name:       "simple command",
			cmd:        Command{Name: "echo", Args: []string{"hello"}},
			wantStdout: "hello\n",
		},
		{
			name:    "empty command",
			cmd:     Command{},
			wantErr: true,
		},
		{
			name:    "nonexistent command",
			cmd:     Command{Name: "definitely-not-a-command-huti"},
			wantErr: true,
		},
		{
			name:    "failing command",
			cmd:     Command{Name: "false"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(context.Background(), tt.cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, result.Stdout)
			assert.Equal(t, 0, result.ExitCode)
		})
	}
}

func TestRun_Dir(t *testing.T) {
	dir := t.TempDir()
	result, err := Run(context.Background(), Command{Name: "pwd", Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, strings.TrimSpace(result.Stdout), dir)
}

func TestRun_Tee(t *testing.T) {
	var tee bytes.Buffer
	result, err := Run(context.Background(), Command{
		Name:      "echo",
		Args:      []string{"mirrored"},
		TeeStdout: &tee,
	})
	require.NoError(t, err)
	assert.Equal(t, "mirrored\n", result.Stdout)
	assert.Equal(t, "mirrored\n", tee.String())
}

func TestRun_ErrorDetails(t *testing.T) {
	result, err := Run(context.Background(), Command{Name: "ls", Args: []string{"/definitely/not/here"}})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, 0, result.ExitCode)

	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, []string{"ls", "/definitely/not/here"}, cmdErr.Cmd)
	assert.Contains(t, cmdErr.Error(), "Return Code")
	assert.Contains(t, cmdErr.Error(), "ls /definitely/not/here")
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Command{Name: "sleep", Args: []string{"10"}})
	assert.Error(t, err)
}

func TestExec(t *testing.T) {
	result, err := Exec(context.Background(), "echo", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a b\n", result.Stdout)
}

func TestResult_Lines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, (&Result{Stdout: "a\nb\n"}).Lines())
	assert.Nil(t, (&Result{}).Lines())
}

func TestRun_EmptyCommandSentinel(t *testing.T) {
	_, err := Run(context.Background(), Command{})
	assert.True(t, errors.Is(err, ErrEmptyCommand))
}
