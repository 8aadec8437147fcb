// Package archive compresses directories to .tar.gz files and extracts
// them again.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huti-dev/huti/pathutil"
)

var (
	// ErrCompressCwd is returned when TarDir is asked to compress the
	// current working directory.
	ErrCompressCwd = errors.New("cannot compress current working directory")

	// ErrUnsafePath is returned when an archive entry would escape the
	// extraction directory.
	ErrUnsafePath = errors.New("unsafe path in archive")

	// ErrEmptyArchive is returned when an archive holds no entries.
	ErrEmptyArchive = errors.New("empty archive")
)

// TarDir compresses the src directory to <basename>.tar.gz in the current
// working directory and returns the absolute path of the archive. Entries
// are stored under the directory's base name.
func TarDir(src pathutil.Path) (pathutil.Path, error) {
	if !src.Exists() {
		return "", fmt.Errorf("%w: %s", os.ErrNotExist, src)
	}

	abs, err := src.Realpath(true)
	if err != nil {
		return "", err
	}
	cwd, err := pathutil.Cwd()
	if err != nil {
		return "", err
	}
	if resolved, err := cwd.Realpath(true); err == nil && resolved == abs {
		return "", ErrCompressCwd
	}

	dest := pathutil.Path(src.Name() + ".tar.gz")
	out, err := os.Create(string(dest))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	top := src.Name()
	walkErr := filepath.WalkDir(string(abs), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(string(abs), path)
		if err != nil {
			return err
		}
		name := top
		if rel != "." {
			name = top + "/" + filepath.ToSlash(rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		link := ""
		if info.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		}
		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = name
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		return "", fmt.Errorf("tar %s: %w", src, walkErr)
	}
	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dest.Absolute(), nil
}

// Untar extracts a .tar.gz archive into dest and returns the absolute path
// of the top-level extracted directory. Entries that would land outside
// dest are rejected, including writes routed through symlinks the archive
// itself planted.
func Untar(src, dest pathutil.Path) (pathutil.Path, error) {
	f, err := os.Open(string(src))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("gunzip %s: %w", src, err)
	}
	defer gz.Close()

	if err := os.MkdirAll(string(dest), 0o755); err != nil {
		return "", err
	}
	root, err := filepath.EvalSymlinks(string(dest))
	if err != nil {
		return "", err
	}

	tr := tar.NewReader(gz)
	top := ""
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("untar %s: %w", src, err)
		}

		target, err := secureTarget(root, hdr.Name)
		if err != nil {
			return "", err
		}
		if top == "" {
			top, _, _ = strings.Cut(filepath.ToSlash(filepath.FromSlash(hdr.Name)), "/")
		}

		// A symlink left by an earlier entry must not redirect this one.
		if info, err := os.Lstat(string(target)); err == nil && info.Mode()&os.ModeSymlink != 0 {
			if err := os.Remove(string(target)); err != nil {
				return "", err
			}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(string(target), hdr.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(string(target.Parent()), 0o755); err != nil {
				return "", err
			}
			if err := os.Symlink(hdr.Linkname, string(target)); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(string(target.Parent()), 0o755); err != nil {
				return "", err
			}
			out, err := os.OpenFile(string(target), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return "", err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return "", fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return "", err
			}
		}
	}
	if top == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyArchive, src)
	}
	return pathutil.Path(root).Join(top), nil
}

// secureTarget maps an archive entry name to its extraction path under
// root, which must already be symlink-resolved. The name must stay local
// and its parent must resolve inside root, so a symlink planted by an
// earlier entry cannot route the write outside the extraction directory.
func secureTarget(root, name string) (pathutil.Path, error) {
	name = filepath.FromSlash(name)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	parent := filepath.Dir(filepath.Join(root, name))

	// Resolve symlinks in the longest existing prefix of the parent.
	existing := parent
	var missing []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		missing = append(missing, filepath.Base(existing))
		up := filepath.Dir(existing)
		if up == existing {
			break
		}
		existing = up
	}
	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, missing[i])
	}

	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return pathutil.Path(resolved).Join(filepath.Base(name)), nil
}
