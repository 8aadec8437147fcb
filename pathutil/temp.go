package pathutil

import (
	"fmt"
	"os"
)

// TempDir creates a temporary directory and returns it with a cleanup func
// that removes it and everything inside.
func TempDir(pattern string) (Path, func(), error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("tempdir: %w", err)
	}
	return Path(dir), func() { os.RemoveAll(dir) }, nil
}

// TempFile creates a temporary file and returns its path with a cleanup
// func that removes it.
func TempFile(pattern string) (Path, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("tempfile: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", nil, fmt.Errorf("tempfile: %w", err)
	}
	return Path(name), func() { os.Remove(name) }, nil
}

// TempCd creates a temporary directory and changes into it. The cleanup
// restores the previous working directory and removes the directory.
func TempCd(pattern string) (Path, func(), error) {
	dir, rmdir, err := TempDir(pattern)
	if err != nil {
		return "", nil, err
	}
	// Resolve before chdir so the returned path matches Cwd on systems
	// where the temp dir lives behind a symlink (e.g. /tmp on macOS).
	resolved, err := dir.Realpath(true)
	if err != nil {
		rmdir()
		return "", nil, err
	}
	restore, err := resolved.Cd()
	if err != nil {
		rmdir()
		return "", nil, err
	}
	return resolved, func() {
		_ = restore()
		rmdir()
	}, nil
}
