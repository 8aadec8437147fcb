// Package repo provides git repository helpers: remote URL building and
// parsing, working-tree discovery, tags and cloning. Everything shells out
// to the git binary through cmdexec.
package repo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/huti-dev/huti/pathutil"
)

// GitHubDomain is the default host for built remote URLs.
const GitHubDomain = "github.com"

// Scheme is a git URL scheme, including the pip-style git+ prefixed forms.
type Scheme string

const (
	HTTPS    Scheme = "https"
	SSH      Scheme = "ssh"
	GitHTTPS Scheme = "git+https"
	GitSSH   Scheme = "git+ssh"
	GitFile  Scheme = "git+file"
)

// DefaultScheme is used when a Remote has no scheme set.
const DefaultScheme = HTTPS

var (
	// ErrRelativeFileRepo is returned when a git+file remote's name is
	// not an absolute path.
	ErrRelativeFileRepo = errors.New("git+file repo must be an absolute path")
	// ErrInvalidRemote is returned by ParseRemote for URLs without an
	// owner/name path.
	ErrInvalidRemote = errors.New("invalid remote URL")
)

// Remote identifies a hosted repository: owner and name on GitHubDomain,
// or, for the git+file scheme, Name alone as an absolute local path.
type Remote struct {
	Owner  string
	Name   string
	Scheme Scheme
}

// URL builds the remote URL for the Remote's scheme. SSH forms get the
// conventional git username.
func (r Remote) URL() (string, error) {
	scheme := r.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	if scheme == GitFile {
		if !strings.HasPrefix(r.Name, "/") {
			return "", fmt.Errorf("%w: %s", ErrRelativeFileRepo, r.Name)
		}
		path := pathutil.Path(r.Name).Absolute().WithSuffix(".git")
		return string(scheme) + "://" + string(path), nil
	}

	user := ""
	if strings.Contains(string(scheme), "ssh") {
		user = "git@"
	}
	return string(scheme) + "://" + user + GitHubDomain + "/" + r.Owner + "/" + r.Name, nil
}

// CloneURL is URL with the pip-style git+ prefix stripped, the form the
// git binary accepts.
func (r Remote) CloneURL() (string, error) {
	u, err := r.URL()
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(u, "git+"), nil
}

// ParseRemote parses a remote URL back into owner, name and scheme. A
// trailing .git on the name is dropped. scp-like syntax
// (git@github.com:owner/name) is normalized to ssh.
func ParseRemote(raw string) (Remote, error) {
	// git@host:owner/name has no scheme; rewrite to a parseable URL.
	if !strings.Contains(raw, "://") && strings.Contains(raw, "@") && strings.Contains(raw, ":") {
		host, path, _ := strings.Cut(raw, ":")
		raw = "ssh://" + host + "/" + path
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Remote{}, fmt.Errorf("%w: %s: %v", ErrInvalidRemote, raw, err)
	}

	if u.Scheme == string(GitFile) || (u.Scheme == "file") {
		return Remote{
			Name:   strings.TrimSuffix(u.Path, ".git"),
			Scheme: GitFile,
		}, nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return Remote{}, fmt.Errorf("%w: %s", ErrInvalidRemote, raw)
	}
	return Remote{
		Owner:  segments[0],
		Name:   strings.TrimSuffix(segments[1], ".git"),
		Scheme: Scheme(u.Scheme),
	}, nil
}

// FromPath derives a Remote from a local checkout path: the directory name
// becomes the repo name, its parent the owner.
func FromPath(path pathutil.Path) Remote {
	return Remote{
		Owner:  path.Parent().Name(),
		Name:   strings.TrimSuffix(path.Name(), ".git"),
		Scheme: DefaultScheme,
	}
}
