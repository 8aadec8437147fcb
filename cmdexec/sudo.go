package cmdexec

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strconv"
)

// Ami reports whether the current real user is the named user.
func Ami(name string) (bool, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return false, fmt.Errorf("failed to lookup user %s: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return false, fmt.Errorf("invalid UID %s for user %s: %w", u.Uid, name, err)
	}
	return os.Getuid() == uid, nil
}

// AmiRoot reports whether the current real user is root.
func AmiRoot() bool { return os.Getuid() == 0 }

// Sudo runs a command as the given user. When the current user already is
// that user the command runs directly; otherwise it is re-spawned through
// `sudo -u user`. The sudo binary must be installed in the latter case.
func Sudo(ctx context.Context, asUser string, cmd Command) (*Result, error) {
	if asUser == "" {
		asUser = "root"
	}
	same, err := Ami(asUser)
	if err != nil {
		return nil, err
	}
	if same {
		return Run(ctx, cmd)
	}

	sudo, err := MustWhich("sudo")
	if err != nil {
		return nil, err
	}
	wrapped := cmd
	wrapped.Name = sudo
	wrapped.Args = append([]string{"-u", asUser, cmd.Name}, cmd.Args...)
	return Run(ctx, wrapped)
}
