package cmdexec

import (
	"context"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhich(t *testing.T) {
	assert.NotEmpty(t, Which("sh"))
	assert.Empty(t, Which("definitely-not-a-command-huti"))
}

func TestMustWhich(t *testing.T) {
	path, err := MustWhich("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = MustWhich("definitely-not-a-command-huti")
	assert.ErrorIs(t, err, ErrCommandNotFound)
}

func TestAmi(t *testing.T) {
	current, err := user.Current()
	require.NoError(t, err)

	ok, err := Ami(current.Username)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Ami("root")
	require.NoError(t, err)
	assert.Equal(t, current.Uid == "0", ok)
}

func TestSudo_SameUser(t *testing.T) {
	current, err := user.Current()
	require.NoError(t, err)

	// Running as the current user needs no privilege change, so no sudo
	// binary is required.
	result, err := Sudo(context.Background(), current.Username, Command{Name: "echo", Args: []string{"ok"}})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", result.Stdout)
}
