package pathutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huti-dev/huti/cmdexec"
)

// ErrInvalidOwner is returned by Chown when the owner string lacks the
// "user:group" form.
var ErrInvalidOwner = errors.New("owner must be user:group")

func runArgv(ctx context.Context, argv []string) error {
	_, err := cmdexec.Run(ctx, cmdexec.Command{Name: argv[0], Args: argv[1:]})
	return err
}

// Chmod changes the path's mode through the chmod command, escalating with
// sudo when needed. The mode may be numeric ("755") or symbolic ("u+s,+x").
// An empty mode defaults to 755 for directories and 644 for files. With
// recursive a directory is changed along with its contents.
func (p Path) Chmod(ctx context.Context, mode string, recursive bool) error {
	if !p.Exists() {
		return fmt.Errorf("chmod %s: %w", p, os.ErrNotExist)
	}
	if mode == "" {
		if p.IsDir() {
			mode = "755"
		} else {
			mode = "644"
		}
	}

	argv := p.SudoArgs(true, false)
	argv = append(argv, "chmod")
	if recursive && p.IsDir() {
		argv = append(argv, "-R")
	}
	argv = append(argv, mode, string(p))
	return runArgv(ctx, argv)
}

// Chown changes the path's owner through the chown command. The owner must
// be "user:group"; empty defaults to the login user. With recursive a
// directory is changed along with its contents.
func (p Path) Chown(ctx context.Context, owner string, recursive bool) error {
	if owner == "" {
		pw, err := FromLogin()
		if err != nil {
			return err
		}
		owner = pw.Own()
	}
	if !strings.Contains(owner, ":") {
		return fmt.Errorf("%w: got %q", ErrInvalidOwner, owner)
	}
	if !p.Exists() {
		return fmt.Errorf("chown %s: %w", p, os.ErrNotExist)
	}

	argv := p.SudoArgs(true, false)
	argv = append(argv, "chown")
	if recursive && p.IsDir() {
		argv = append(argv, "-R")
	}
	argv = append(argv, owner, string(p))
	return runArgv(ctx, argv)
}

// ChownTo is Chown with a resolved Passwd.
func (p Path) ChownTo(ctx context.Context, pw *Passwd, recursive bool) error {
	return p.Chown(ctx, pw.Own(), recursive)
}

// CpOptions modify Cp.
type CpOptions struct {
	// Contents copies the contents of a source directory into dest
	// ("cp src/ dest") instead of the directory itself.
	Contents bool
	// FollowSymlinks copies the files symlinks point to (-L) instead of
	// the links themselves.
	FollowSymlinks bool
	// Preserve keeps mode, ownership and timestamps (-p).
	Preserve bool
}

// Cp copies the path to dest through the cp command, recursively for
// directories, escalating with sudo when dest is not writable. It returns
// dest.
func (p Path) Cp(ctx context.Context, dest Path, opts CpOptions) (Path, error) {
	if !p.Exists() {
		return "", fmt.Errorf("cp %s: %w", p, os.ErrNotExist)
	}

	argv := dest.SudoArgs(false, false)
	argv = append(argv, "cp")
	if p.IsDir() {
		argv = append(argv, "-R")
	}
	if opts.FollowSymlinks {
		argv = append(argv, "-L")
	}
	if opts.Preserve {
		argv = append(argv, "-p")
	}
	src := string(p)
	if opts.Contents && p.IsDir() {
		// GNU cp ignores a trailing "/", so "src/." is the portable way
		// to copy a directory's contents rather than the directory.
		src += "/."
	}
	argv = append(argv, src, string(dest))
	if err := runArgv(ctx, argv); err != nil {
		return "", err
	}
	return dest, nil
}

// Mv moves the path to dest through the mv command, escalating with sudo
// when dest is not writable. It returns dest.
func (p Path) Mv(ctx context.Context, dest Path) (Path, error) {
	argv := dest.SudoArgs(false, false)
	argv = append(argv, "mv", string(p), string(dest))
	if err := runArgv(ctx, argv); err != nil {
		return "", err
	}
	return dest, nil
}

// Rm removes the path through the rm command, recursively for directories.
// A missing path is an error only when missingOK is false.
func (p Path) Rm(ctx context.Context, missingOK bool) error {
	if !p.Exists() {
		if missingOK {
			return nil
		}
		return fmt.Errorf("rm %s: %w", p, os.ErrNotExist)
	}

	argv := p.SudoArgs(true, false)
	argv = append(argv, "rm")
	if p.IsDir() {
		argv = append(argv, "-rf")
	}
	argv = append(argv, string(p))
	return runArgv(ctx, argv)
}

// Mkdir creates the path and any missing parents through mkdir -p. A
// non-empty mode is passed as -m. A non-nil owner gets ownership after
// creation. A file anywhere in the path returns ErrFileInParents.
func (p Path) Mkdir(ctx context.Context, mode string, owner *Passwd) error {
	if p.IsDir() {
		return nil
	}
	if blocking, ok := p.FileInParents(); ok {
		return fmt.Errorf("mkdir %s: %w: %s", p, ErrFileInParents, blocking)
	}

	argv := p.SudoArgs(false, false)
	argv = append(argv, "mkdir", "-p")
	if mode != "" {
		argv = append(argv, "-m", mode)
	}
	argv = append(argv, string(p))
	if err := runArgv(ctx, argv); err != nil {
		return err
	}
	if owner != nil {
		return p.ChownTo(ctx, owner, false)
	}
	return nil
}

// Touch creates the path as a file, making parent directories as needed,
// then applies mode (default 644) and, when owner is non-nil, ownership.
func (p Path) Touch(ctx context.Context, mode string, owner *Passwd) (Path, error) {
	path := p.Absolute()
	if path.IsFile() || path.IsDir() {
		return path, nil
	}
	if blocking, ok := path.Parent().FileInParents(); ok {
		return "", fmt.Errorf("touch %s: %w: %s", path, ErrFileInParents, blocking)
	}
	if parent := path.Parent(); !parent.Exists() {
		if err := parent.Mkdir(ctx, "", nil); err != nil {
			return "", err
		}
	}

	argv := path.SudoArgs(false, false)
	argv = append(argv, "touch", string(path))
	if err := runArgv(ctx, argv); err != nil {
		return "", err
	}
	if err := path.Chmod(ctx, mode, false); err != nil {
		return "", err
	}
	if owner != nil {
		if err := path.ChownTo(ctx, owner, false); err != nil {
			return "", err
		}
	}
	return path, nil
}

// SetID installs the file with the set-user-ID (or set-group-ID with
// setUID false) on-execution bit, owned by root and executable by all. A
// non-empty name copies the file to a sibling of that name first, so the
// original stays unprivileged. Nothing runs when the target already has the
// bit, is root-owned and matches the source contents.
func (p Path) SetID(ctx context.Context, name string, setUID bool) (Path, error) {
	target := p
	if name != "" {
		target = p.WithName(name)
	}

	change := false
	if name != "" && target != p {
		same := false
		if target.Exists() {
			same, _ = p.Cmp(target)
		}
		if !same {
			if _, err := p.Cp(ctx, target, CpOptions{}); err != nil {
				return "", err
			}
			change = true
		}
	}

	if !change {
		st, err := target.Stats(false)
		if err != nil {
			return "", err
		}
		mode := st.Info.Mode()
		idBit := os.ModeSetuid
		if !setUID {
			idBit = os.ModeSetgid
		}
		if mode&idBit == 0 || mode.Perm()&0o111 != 0o111 {
			change = true
		}
		if !st.Root {
			change = true
		}
	}

	if change {
		root, err := Root()
		if err != nil {
			return "", err
		}
		// chown first: chmod clears the id bits when ownership changes.
		if err := target.ChownTo(ctx, root, false); err != nil {
			return "", err
		}
		symbolic := "u+s,+x"
		if !setUID {
			symbolic = "g+s,+x"
		}
		if err := target.Chmod(ctx, symbolic, true); err != nil {
			return "", err
		}
	}
	return target, nil
}
