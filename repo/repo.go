package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huti-dev/huti/cmdexec"
	"github.com/huti-dev/huti/pathutil"
)

// ErrNotRepo is returned when a path is not inside a git working tree.
var ErrNotRepo = errors.New("not a git repository")

// ErrNoTags is returned by LatestTag when the repository has none.
var ErrNoTags = errors.New("no tags")

func gitDir(path pathutil.Path) string {
	if path == "" {
		return "."
	}
	return string(path.ToParent())
}

// IsRepo reports whether path (or its parents) is inside a git working
// tree. A file path is resolved to its directory.
func IsRepo(ctx context.Context, path pathutil.Path) bool {
	_, err := cmdexec.Exec(ctx, "git", "-C", gitDir(path), "rev-parse", "--git-dir")
	return err == nil
}

// Superproject returns the root of the superproject working tree when path
// is inside a submodule, otherwise the top-level directory of the working
// tree itself.
func Superproject(ctx context.Context, path pathutil.Path) (pathutil.Path, error) {
	result, err := cmdexec.Exec(ctx, "git", "-C", gitDir(path),
		"rev-parse", "--show-superproject-working-tree", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("superproject %s: %w", path, ErrNotRepo)
	}
	lines := result.Lines()
	if len(lines) == 0 {
		return "", fmt.Errorf("superproject %s: %w", path, ErrNotRepo)
	}
	// With a superproject two lines come back; the first is the
	// superproject root. Otherwise the single line is the toplevel.
	return pathutil.Path(lines[0]), nil
}

// Top returns the top-level directory of the working tree containing path.
func Top(ctx context.Context, path pathutil.Path) (pathutil.Path, error) {
	result, err := cmdexec.Exec(ctx, "git", "-C", gitDir(path), "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("top %s: %w", path, ErrNotRepo)
	}
	lines := result.Lines()
	if len(lines) == 0 {
		return "", fmt.Errorf("top %s: %w", path, ErrNotRepo)
	}
	return pathutil.Path(lines[0]), nil
}

// LatestTag returns the most recent tag reachable from HEAD.
func LatestTag(ctx context.Context, path pathutil.Path) (string, error) {
	result, err := cmdexec.Exec(ctx, "git", "-C", gitDir(path), "describe", "--abbrev=0", "--tags")
	if err != nil {
		return "", fmt.Errorf("latest tag %s: %w", path, ErrNoTags)
	}
	return strings.TrimSpace(result.Stdout), nil
}

// OriginURL returns the origin remote URL of the repository at path.
func OriginURL(ctx context.Context, path pathutil.Path) (Remote, error) {
	result, err := cmdexec.Exec(ctx, "git", "-C", gitDir(path), "remote", "get-url", "origin")
	if err != nil {
		return Remote{}, fmt.Errorf("origin url %s: %w", path, err)
	}
	return ParseRemote(strings.TrimSpace(result.Stdout))
}

// Clone clones the remote into dir, creating missing parents. An existing
// dir is left alone and reported as already cloned.
func Clone(ctx context.Context, remote Remote, dir pathutil.Path) (cloned bool, err error) {
	if dir.Exists() {
		return false, nil
	}
	if parent := dir.Parent(); !parent.Exists() {
		if err := parent.Mkdir(ctx, "", nil); err != nil {
			return false, err
		}
	}

	cloneURL, err := remote.CloneURL()
	if err != nil {
		return false, err
	}
	if _, err := cmdexec.Exec(ctx, "git", "clone", cloneURL, string(dir)); err != nil {
		return false, fmt.Errorf("clone %s: %w", cloneURL, err)
	}
	return true, nil
}
