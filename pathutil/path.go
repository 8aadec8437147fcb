// Package pathutil provides an extended path abstraction: paths that know
// about ownership, permissions, symlinks and privilege escalation. Mutating
// operations shell out to the coreutils (chmod, chown, cp, mv, mkdir, touch,
// rm) and prepend sudo only when the invoking user lacks write access to the
// target or its first existing ancestor.
package pathutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Path is a filesystem path with extended semantics.
type Path string

// ErrFileInParents is returned when a regular file blocks a directory path,
// e.g. mkdir of a/b where a is a file.
var ErrFileInParents = errors.New("file found in parents")

// ErrNotRelative is returned by Relative when the path is outside the base.
var ErrNotRelative = errors.New("path is not relative to base")

// New returns a Path, expanding a leading tilde and environment variables.
func New(s string) Path {
	return Path(s).ExpandVars().Expand()
}

// Cwd returns the current working directory.
func Cwd() (Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return Path(wd), nil
}

// Home returns the current user's home directory.
func Home() (Path, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return Path(home), nil
}

func (p Path) String() string { return string(p) }

// Join appends parts to the path.
func (p Path) Join(parts ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, parts...)...))
}

// Add joins parts like Join but fails when the path is an existing regular
// file, since nothing can live below it.
func (p Path) Add(parts ...string) (Path, error) {
	if p.IsFile() {
		return "", fmt.Errorf("%w: %s", ErrFileInParents, p)
	}
	return p.Join(parts...), nil
}

// Parent returns the parent directory.
func (p Path) Parent() Path { return Path(filepath.Dir(string(p))) }

// Name returns the final path element.
func (p Path) Name() string { return filepath.Base(string(p)) }

// WithName returns the path with its final element replaced.
func (p Path) WithName(name string) Path { return p.Parent().Join(name) }

// WithSuffix returns the path with its extension replaced. An empty suffix
// removes the extension.
func (p Path) WithSuffix(suffix string) Path {
	s := string(p)
	return Path(strings.TrimSuffix(s, filepath.Ext(s)) + suffix)
}

// Suffix returns the file extension including the dot.
func (p Path) Suffix() string { return filepath.Ext(string(p)) }

// Parts splits the path into its components, with "/" as the first part of
// an absolute path.
func (p Path) Parts() []string {
	s := filepath.Clean(string(p))
	var parts []string
	if strings.HasPrefix(s, "/") {
		parts = append(parts, "/")
		s = strings.TrimPrefix(s, "/")
	}
	for _, part := range strings.Split(s, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// Absolute returns the absolute form of the path without resolving symlinks.
func (p Path) Absolute() Path {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return p
	}
	return Path(abs)
}

// Realpath returns the canonical path, resolving every symlink. When strict
// is false a missing path resolves as far as possible instead of failing.
func (p Path) Realpath(strict bool) (Path, error) {
	resolved, err := filepath.EvalSymlinks(string(p.Absolute()))
	if err != nil {
		if strict {
			return "", fmt.Errorf("realpath %s: %w", p, err)
		}
		return p.Absolute(), nil
	}
	return Path(resolved), nil
}

// ExpandVars expands $var and ${var} references. Unknown variables are left
// unchanged.
func (p Path) ExpandVars() Path {
	return Path(os.Expand(string(p), func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return "$" + name
	}))
}

// Expand replaces a leading ~ with the current user's home directory.
func (p Path) Expand() Path {
	s := string(p)
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if s == "~" {
		return Path(home)
	}
	return Path(home).Join(s[2:])
}

// Tilde replaces the home directory with ~ wherever it appears, the
// inverse of Expand.
func (p Path) Tilde() Path {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	return Path(strings.ReplaceAll(string(p), home, "~"))
}

// Exists reports whether the path exists. Unlike os.Stat it reports true for
// broken symlinks.
func (p Path) Exists() bool {
	if _, err := os.Stat(string(p)); err == nil {
		return true
	}
	return p.IsSymlink()
}

// IsDir reports whether the path is an existing directory.
func (p Path) IsDir() bool {
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// IsFile reports whether the path is an existing regular file.
func (p Path) IsFile() bool {
	info, err := os.Stat(string(p))
	return err == nil && info.Mode().IsRegular()
}

// IsSymlink reports whether the path itself is a symlink, broken or not.
func (p Path) IsSymlink() bool {
	info, err := os.Lstat(string(p))
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// ToParent returns the parent when the path is an existing file, otherwise
// the path itself.
func (p Path) ToParent() Path {
	if p.IsFile() {
		return p.Parent()
	}
	return p
}

// Has reports whether every part is present in the path's literal components.
// Parts may be given space separated or as a slash-joined path.
func (p Path) Has(value string) bool {
	return containsParts(p.Parts(), value)
}

// Contains is like Has but checks against the resolved absolute path.
func (p Path) Contains(value string) bool {
	resolved, err := p.Realpath(false)
	if err != nil {
		resolved = p.Absolute()
	}
	return containsParts(resolved.Parts(), value)
}

func containsParts(parts []string, value string) bool {
	if value == "" {
		return false
	}
	var items []string
	if strings.Contains(value, "/") {
		items = Path(value).Parts()
	} else {
		items = strings.Fields(value)
	}
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		found := false
		for _, part := range parts {
			if part == item {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Relative returns the path relative to base, or ErrNotRelative when the
// path lies outside it.
func (p Path) Relative(base Path) (Path, error) {
	rel, err := filepath.Rel(string(base.Absolute()), string(p.Absolute()))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s not under %s", ErrNotRelative, p, base)
	}
	return Path(rel), nil
}

// Checksum returns the hex sha256 digest of the file contents, streamed.
func (p Path) Checksum() (string, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", p, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", p, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Cmp reports whether both files have the same contents, ignoring metadata.
func (p Path) Cmp(other Path) (bool, error) {
	a, err := p.Checksum()
	if err != nil {
		return false, err
	}
	b, err := other.Checksum()
	if err != nil {
		return false, err
	}
	return a == b, nil
}

// ReadText returns the file contents as a string.
func (p Path) ReadText() (string, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}

// WriteText writes text to the file, creating it with mode 0644.
func (p Path) WriteText(text string) error {
	if err := os.WriteFile(string(p), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// AppendText appends text to the file, creating it when missing, and returns
// the full contents afterwards.
func (p Path) AppendText(text string) (string, error) {
	f, err := os.OpenFile(string(p), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("append %s: %w", p, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", fmt.Errorf("append %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("append %s: %w", p, err)
	}
	return p.ReadText()
}

// Ln creates a symlink at dest pointing to p, like ln -s. An existing
// symlink with the same target is left untouched. With force an existing
// dest is removed first, otherwise the call fails.
func (p Path) Ln(dest Path, force bool) (Path, error) {
	if dest.IsSymlink() {
		target, err := os.Readlink(string(dest))
		if err == nil {
			resolved, _ := Path(target).Realpath(false)
			self, _ := p.Realpath(false)
			if resolved == self {
				return dest, nil
			}
		}
	}
	if dest.Exists() {
		if !force {
			return "", fmt.Errorf("ln %s: %w", dest, os.ErrExist)
		}
		if err := os.RemoveAll(string(dest)); err != nil {
			return "", fmt.Errorf("ln %s: %w", dest, err)
		}
	}
	if err := os.Symlink(string(p), string(dest)); err != nil {
		return "", fmt.Errorf("ln %s -> %s: %w", dest, p, err)
	}
	return dest, nil
}

// RmEmpty prunes empty directories bottom-up. With preserve the top
// directory itself is kept even when it ends up empty.
func (p Path) RmEmpty(preserve bool) error {
	top := p.Absolute()
	var dirs []string
	err := filepath.WalkDir(string(top), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rm empty %s: %w", p, err)
	}
	// Deepest first so emptied parents are seen empty too.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		if preserve && Path(dir) == top {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("rm empty %s: %w", dir, err)
		}
	}
	return nil
}

// Chdir changes the working directory to the path, or to its parent when the
// path is a file. It returns the directory changed into.
func (p Path) Chdir() (Path, error) {
	dir := p.ToParent()
	if err := os.Chdir(string(dir)); err != nil {
		return "", fmt.Errorf("chdir %s: %w", dir, err)
	}
	return dir, nil
}

// Cd changes into the path and returns a restore func that changes back to
// the previous working directory.
func (p Path) Cd() (func() error, error) {
	prev, err := Cwd()
	if err != nil {
		return nil, err
	}
	if _, err := p.Chdir(); err != nil {
		return nil, err
	}
	return func() error {
		_, err := prev.Chdir()
		return err
	}, nil
}
