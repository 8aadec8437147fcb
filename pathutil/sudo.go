package pathutil

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/huti-dev/huti/cmdexec"
)

// Access reports whether the invoking user can access the path with the
// given mode (unix.R_OK, W_OK, X_OK or F_OK). With effectiveIDs the check
// uses the effective uid/gid, the decision the kernel makes for a setuid
// binary, instead of the real ids. A missing path reports false.
func (p Path) Access(mode uint32, effectiveIDs bool) bool {
	var flags int
	if effectiveIDs {
		flags = unix.AT_EACCESS
	}
	return unix.Faccessat(unix.AT_FDCWD, string(p), mode, flags) == nil
}

// Writable reports write access with the real uid/gid.
func (p Path) Writable() bool { return p.Access(unix.W_OK, false) }

// SudoArgs returns the argv prefix needed to operate on the path: either
// {"/path/to/sudo"} or nil. The path's first existing ancestor decides: when
// the invoking user can already write it no prefix is needed, unless force
// is set. Root and systems without sudo never get a prefix.
func (p Path) SudoArgs(force, effectiveIDs bool) []string {
	sudo := cmdexec.Which("sudo")
	if sudo == "" {
		return nil
	}
	uid := os.Getuid()
	if effectiveIDs {
		uid = os.Geteuid()
	}
	if uid == 0 {
		return nil
	}

	path := p.Absolute()
	for {
		if path.Exists() {
			if path.Access(unix.W_OK, effectiveIDs) && !force {
				return nil
			}
			break
		}
		parent := path.Parent()
		if parent == path {
			break
		}
		path = parent
	}
	return []string{sudo}
}
