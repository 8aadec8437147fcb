package cmdexec

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Which resolves a command to its absolute path. It first consults PATH and
// then falls back to the shell's own `command -v`, which also finds aliases,
// builtins and exported functions. Returns "" when nothing matched.
func Which(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	out, ok := Stdout(context.Background(), "command -v "+name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(out)
}

// MustWhich is like Which but reports ErrCommandNotFound instead of "".
func MustWhich(name string) (string, error) {
	if path := Which(name); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}
