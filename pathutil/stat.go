package pathutil

import (
	"fmt"
	"os"
	"syscall"
)

// PathStat augments os.FileInfo with ownership names, an ls-style mode
// string and the setuid/setgid/sticky bits.
type PathStat struct {
	UID    int
	GID    int
	User   string
	Group  string
	Mode   string // ls-style, e.g. "-rwsr-xr-x"
	Own    string // "user:group"
	Passwd *Passwd
	Info   os.FileInfo
	Root   bool // owned by uid 0
	SUID   bool // setuid and user-executable
	SGID   bool // setgid and group-executable
	Sticky bool
}

// Stats stats the path and resolves ownership. With followSymlinks a symlink
// is resolved to its target, otherwise the link itself is examined.
func (p Path) Stats(followSymlinks bool) (*PathStat, error) {
	var info os.FileInfo
	var err error
	if followSymlinks {
		info, err = os.Stat(string(p))
	} else {
		info, err = os.Lstat(string(p))
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("stat %s: no system stat available", p)
	}

	pw, err := FromUID(int(sys.Uid))
	if err != nil {
		return nil, err
	}

	mode := info.Mode()
	return &PathStat{
		UID:    int(sys.Uid),
		GID:    int(sys.Gid),
		User:   pw.User,
		Group:  pw.Group,
		Mode:   lsMode(mode),
		Own:    pw.Own(),
		Passwd: pw,
		Info:   info,
		Root:   sys.Uid == 0,
		SUID:   mode&os.ModeSetuid != 0 && mode&0o100 != 0,
		SGID:   mode&os.ModeSetgid != 0 && mode&0o010 != 0,
		Sticky: mode&os.ModeSticky != 0,
	}, nil
}

// lsMode renders a FileMode the way ls -l does. os.FileMode.String puts the
// setuid/setgid/sticky markers in the type prefix, ls folds them into the
// execute columns (s/S, t/T).
func lsMode(m os.FileMode) string {
	b := []byte("----------")

	switch {
	case m.IsDir():
		b[0] = 'd'
	case m&os.ModeSymlink != 0:
		b[0] = 'l'
	case m&os.ModeNamedPipe != 0:
		b[0] = 'p'
	case m&os.ModeSocket != 0:
		b[0] = 's'
	case m&os.ModeCharDevice != 0:
		b[0] = 'c'
	case m&os.ModeDevice != 0:
		b[0] = 'b'
	}

	perm := m.Perm()
	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[1+i] = rwx[i]
		}
	}

	if m&os.ModeSetuid != 0 {
		if b[3] == 'x' {
			b[3] = 's'
		} else {
			b[3] = 'S'
		}
	}
	if m&os.ModeSetgid != 0 {
		if b[6] == 'x' {
			b[6] = 's'
		} else {
			b[6] = 'S'
		}
	}
	if m&os.ModeSticky != 0 {
		if b[9] == 'x' {
			b[9] = 't'
		} else {
			b[9] = 'T'
		}
	}
	return string(b)
}
