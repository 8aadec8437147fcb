// Package pdf wraps the external PDF toolchain: qpdf for linearization,
// ghostscript for size reduction, imagemagick for the scanned-paper look,
// pdftoppm for rasterization and exiftool for metadata removal. Every
// operation checks for its binary up front and reports a missing one as a
// cmdexec.ErrCommandNotFound wrap.
package pdf

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/huti-dev/huti/cmdexec"
	"github.com/huti-dev/huti/pathutil"
)

// ReduceThreshold is the default size in bytes below which Reduce leaves a
// file alone.
const ReduceThreshold = 2_000_000

// ScanPrefix is prepended to the filename by Scan.
const ScanPrefix = "scanned_"

// Level selects the ghostscript pdfwrite quality preset.
type Level string

const (
	// LevelDefault lets ghostscript choose.
	LevelDefault Level = "/default"
	// LevelPrepress keeps 300 dpi images.
	LevelPrepress Level = "/prepress"
	// LevelEbook downsamples to 150 dpi.
	LevelEbook Level = "/ebook"
	// LevelScreen downsamples to 72 dpi.
	LevelScreen Level = "/screen"
)

// Format selects the raster output of ToImage.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
)

// replace moves tmp over file. The temp dir lives under /tmp, so when file
// sits on another filesystem rename fails with EXDEV and the content is
// copied instead.
func replace(tmp, file pathutil.Path) error {
	if os.Rename(string(tmp), string(file)) == nil {
		return nil
	}
	if err := copyOver(tmp, file); err != nil {
		return err
	}
	return os.Remove(string(tmp))
}

func copyOver(tmp, file pathutil.Path) error {
	src, err := os.Open(string(tmp))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(string(file), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// Linearize rewrites the file web-optimized with qpdf, in place through a
// temp file.
func Linearize(ctx context.Context, file pathutil.Path) error {
	if _, err := cmdexec.MustWhich("qpdf"); err != nil {
		return err
	}

	dir, cleanup, err := pathutil.TempDir("huti-qpdf")
	if err != nil {
		return err
	}
	defer cleanup()

	tmp := dir.Join("tmp.pdf")
	if _, err := cmdexec.Exec(ctx, "qpdf", "--linearize", string(file), string(tmp)); err != nil {
		return fmt.Errorf("linearize %s: %w", file, err)
	}
	if err := replace(tmp, file); err != nil {
		return fmt.Errorf("linearize %s: %w", file, err)
	}
	return nil
}

// Reduce compresses the file with ghostscript pdfwrite at the given level,
// in place. Files at or below threshold bytes are left untouched; pass a
// negative threshold to always compress.
func Reduce(ctx context.Context, file pathutil.Path, level Level, threshold int64) error {
	if threshold >= 0 {
		info, err := os.Stat(string(file))
		if err != nil {
			return fmt.Errorf("reduce %s: %w", file, err)
		}
		if info.Size() <= threshold {
			return nil
		}
	}
	if _, err := cmdexec.MustWhich("gs"); err != nil {
		return err
	}

	dir, cleanup, err := pathutil.TempDir("huti-gs")
	if err != nil {
		return err
	}
	defer cleanup()

	tmp := dir.Join("tmp.pdf")
	_, err = cmdexec.Exec(ctx, "gs",
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS="+string(level),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile="+string(tmp),
		string(file),
	)
	if err != nil {
		return fmt.Errorf("reduce %s: %w", file, err)
	}
	if err := replace(tmp, file); err != nil {
		return fmt.Errorf("reduce %s: %w", file, err)
	}
	return nil
}

// scanRotation picks a small rotation, 0.5 to 0.9 degrees either way, so
// the page never comes out perfectly straight.
func scanRotation() float64 {
	degrees := 0.5 + rand.Float64()*0.4
	if rand.Intn(2) == 0 {
		return -degrees
	}
	return degrees
}

// Scan renders the file to look like it went through a flatbed scanner:
// low density, Gaussian and Uniform noise, a slight random rotation and a
// final sharpen. The result lands next to the source (or in dir when given)
// with the "scanned_" prefix.
func Scan(ctx context.Context, file pathutil.Path, dir pathutil.Path) (pathutil.Path, error) {
	if _, err := cmdexec.MustWhich("convert"); err != nil {
		return "", err
	}

	filename := ScanPrefix + file.Name()
	dest := file.WithName(filename)
	if dir != "" {
		if !dir.IsDir() {
			if err := os.MkdirAll(string(dir), 0o755); err != nil {
				return "", fmt.Errorf("scan %s: %w", file, err)
			}
		}
		dest = dir.Join(filename)
	}

	rotate := strconv.FormatFloat(scanRotation(), 'f', 2, 64)
	_, err := cmdexec.Exec(ctx, "convert",
		"-density", "120",
		string(file),
		"-attenuate", "0.4",
		"+noise", "Gaussian",
		"-rotate", rotate,
		"-attenuate", "0.03",
		"+noise", "Uniform",
		"-sharpen", "0x1.0",
		string(dest),
	)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", file, err)
	}
	return dest, nil
}

// ToImage rasterizes the first page with pdftoppm at the given dpi and
// copies the result next to the source, swapping the extension (.jpg for
// jpeg, .png for png). It returns the image path.
func ToImage(ctx context.Context, file pathutil.Path, dpi int, format Format) (pathutil.Path, error) {
	if _, err := cmdexec.MustWhich("pdftoppm"); err != nil {
		return "", err
	}

	tmpDir, cleanup, err := pathutil.TempDir("huti-ppm")
	if err != nil {
		return "", err
	}
	defer cleanup()

	tmp := tmpDir.Join("tmp")
	_, err = cmdexec.Exec(ctx, "pdftoppm",
		"-"+string(format),
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		string(file), string(tmp),
	)
	if err != nil {
		return "", fmt.Errorf("to image %s: %w", file, err)
	}

	suffix := ".jpg"
	if format == PNG {
		suffix = ".png"
	}
	rendered := tmp.WithSuffix(suffix)
	if !rendered.IsFile() {
		return "", fmt.Errorf("to image %s: %s: %w", file, rendered, os.ErrNotExist)
	}

	dest := file.WithSuffix(suffix)
	if _, err := rendered.Cp(ctx, dest, pathutil.CpOptions{}); err != nil {
		return "", err
	}
	return dest, nil
}

// StripMetadata removes every exif tag in place with exiftool.
func StripMetadata(ctx context.Context, file pathutil.Path) error {
	if _, err := cmdexec.MustWhich("exiftool"); err != nil {
		return err
	}
	if _, err := cmdexec.Exec(ctx, "exiftool", "-q", "-q", "-all=", "-overwrite_original", string(file)); err != nil {
		return fmt.Errorf("strip metadata %s: %w", file, err)
	}
	return nil
}
