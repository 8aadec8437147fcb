package pathutil

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"sync"
)

// Passwd describes a system account: the passwd entry plus the resolved
// primary group name and the full group membership map.
type Passwd struct {
	UID    int
	GID    int
	User   string
	Group  string
	Gecos  string
	Home   Path
	Shell  Path
	Groups map[string]int
}

var (
	passwdMu    sync.RWMutex
	passwdCache = make(map[int]*Passwd)
)

// Current returns the Passwd of the real invoking user.
func Current() (*Passwd, error) { return FromUID(os.Getuid()) }

// FromUID resolves a Passwd by user id. Results are cached process-wide.
func FromUID(uid int) (*Passwd, error) {
	passwdMu.RLock()
	cached, ok := passwdCache[uid]
	passwdMu.RUnlock()
	if ok {
		return cached, nil
	}

	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return nil, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	return fromUser(u)
}

// FromName resolves a Passwd by username.
func FromName(name string) (*Passwd, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", name, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: uid %q: %w", name, u.Uid, err)
	}

	passwdMu.RLock()
	cached, ok := passwdCache[uid]
	passwdMu.RUnlock()
	if ok {
		return cached, nil
	}
	return fromUser(u)
}

// FromLogin returns the Passwd of the login session owner, read from
// /proc/self/loginuid. Outside a login session (no audit uid) it falls back
// to the current user.
func FromLogin() (*Passwd, error) {
	data, err := os.ReadFile("/proc/self/loginuid")
	if err == nil {
		if uid, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil && uid >= 0 && uid != 0xFFFFFFFF {
			return FromUID(uid)
		}
	}
	return Current()
}

// FromSudo returns the Passwd of the user who invoked sudo, from SUDO_UID,
// or the current user when not running under sudo.
func FromSudo() (*Passwd, error) {
	if v := os.Getenv("SUDO_UID"); v != "" {
		if uid, err := strconv.Atoi(v); err == nil {
			return FromUID(uid)
		}
	}
	return Current()
}

// Root returns the Passwd for uid 0.
func Root() (*Passwd, error) { return FromUID(0) }

func fromUser(u *user.User) (*Passwd, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("passwd %s: uid %q: %w", u.Username, u.Uid, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("passwd %s: gid %q: %w", u.Username, u.Gid, err)
	}

	p := &Passwd{
		UID:   uid,
		GID:   gid,
		User:  u.Username,
		Gecos: u.Name,
		Home:  Path(u.HomeDir),
		Shell: lookupShell(u.Username),
	}

	if g, err := user.LookupGroupId(u.Gid); err == nil {
		p.Group = g.Name
	}

	p.Groups = make(map[string]int)
	if ids, err := u.GroupIds(); err == nil {
		for _, id := range ids {
			g, err := user.LookupGroupId(id)
			if err != nil {
				continue
			}
			if n, err := strconv.Atoi(id); err == nil {
				p.Groups[g.Name] = n
			}
		}
	}

	passwdMu.Lock()
	passwdCache[uid] = p
	passwdMu.Unlock()
	return p, nil
}

// lookupShell reads the shell field from /etc/passwd. os/user does not
// expose it. Falls back to $SHELL for the current user, then /bin/sh.
func lookupShell(username string) Path {
	if f, err := os.Open("/etc/passwd"); err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Split(line, ":")
			if len(fields) >= 7 && fields[0] == username && fields[6] != "" {
				return Path(fields[6])
			}
		}
	}
	if current, err := user.Current(); err == nil && current.Username == username {
		if shell := os.Getenv("SHELL"); shell != "" {
			return Path(shell)
		}
	}
	return "/bin/sh"
}

// Own returns the "user:group" string used by chown.
func (p *Passwd) Own() string { return p.User + ":" + p.Group }

// IsSu reports a straight root login: uid 0 without SUDO_USER set.
func (p *Passwd) IsSu() bool {
	return p.UID == 0 && os.Getenv("SUDO_USER") == ""
}

// IsSudo reports whether the process runs under sudo.
func (p *Passwd) IsSudo() bool { return os.Getenv("SUDO_USER") != "" }

// IsUser reports a regular user session: non-root and not under sudo.
func (p *Passwd) IsUser() bool {
	return p.UID != 0 && os.Getenv("SUDO_USER") == ""
}
