package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/huti-dev/huti/pathutil"
)

// Diff returns a unified diff of the two files' raw bytes, one context
// line, suitable for a quick equality check of generated PDFs. Equal files
// produce an empty string.
func Diff(a, b pathutil.Path) (string, error) {
	left, err := os.ReadFile(string(a))
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", a, err)
	}
	right, err := os.ReadFile(string(b))
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", b, err)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(left)),
		B:        difflib.SplitLines(string(right)),
		FromFile: string(a),
		ToFile:   string(b),
		Context:  1,
	})
}

// Equal reports whether both files have identical contents.
func Equal(a, b pathutil.Path) (bool, error) {
	diff, err := Diff(a, b)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(diff) == "", nil
}
