// Package textutil provides string helpers: newline and ANSI stripping,
// home-directory tilde substitution, module-path conversion, spreadsheet
// column counting and Latin-9 hex round-trips.
package textutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ErrInvalidLetter is returned by NewLetterCounter for a start value with
// characters outside A-Z.
var ErrInvalidLetter = errors.New("invalid letter")

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripNewline removes a single trailing newline.
func StripNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// StripNewlineAll applies StripNewline to every element.
func StripNewlineAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = StripNewline(s)
	}
	return out
}

// StripANSI removes ANSI escape sequences.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// StripANSIAll applies StripANSI to every element.
func StripANSIAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = StripANSI(s)
	}
	return out
}

// SplitPairs groups text into two-rune chunks. A trailing odd rune is
// dropped.
func SplitPairs(text string) []string {
	runes := []rune(text)
	pairs := make([]string, 0, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		pairs = append(pairs, string(runes[i:i+2]))
	}
	return pairs
}

// Tilde replaces the home directory with ~ wherever it appears in path.
func Tilde(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return strings.ReplaceAll(path, home, "~")
}

// Untilde expands a leading ~ to the home directory.
func Untilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}

// ToModules converts a file path or space-separated parts to dotted module
// form: "a/b/c.py" becomes "a.b.c". stripSuffix drops the extension of the
// last part.
func ToModules(path string, stripSuffix bool) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == ' '
	})
	if stripSuffix && len(parts) > 0 {
		last := parts[len(parts)-1]
		if dot := strings.LastIndex(last, "."); dot > 0 {
			parts[len(parts)-1] = last[:dot]
		}
	}
	return strings.Join(parts, ".")
}

// LetterCounter counts in spreadsheet column style: A, B, ... Z, AA, AB.
type LetterCounter struct {
	// least significant digit first, 0 == 'A'
	digits []int
}

// NewLetterCounter starts a counter at start ("A" when empty).
func NewLetterCounter(start string) (*LetterCounter, error) {
	if start == "" {
		start = "A"
	}
	digits := make([]int, 0, len(start))
	for i := len(start) - 1; i >= 0; i-- {
		c := start[i]
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLetter, string(start[i]))
		}
		digits = append(digits, int(c-'A'))
	}
	return &LetterCounter{digits: digits}, nil
}

// Increment advances the counter and returns the new value.
func (c *LetterCounter) Increment() string {
	for i := range c.digits {
		if c.digits[i] < 25 {
			c.digits[i]++
			break
		}
		c.digits[i] = 0
		if i == len(c.digits)-1 {
			c.digits = append(c.digits, 0)
			break
		}
	}
	return c.String()
}

func (c *LetterCounter) String() string {
	out := make([]byte, len(c.digits))
	for i, d := range c.digits {
		out[len(c.digits)-1-i] = byte('A' + d)
	}
	return string(out)
}

// ToLatin9 encodes chars as ISO 8859-15 and returns the lowercase hex of
// the encoded bytes.
func ToLatin9(chars string) (string, error) {
	encoded, err := charmap.ISO8859_15.NewEncoder().String(chars)
	if err != nil {
		return "", fmt.Errorf("encode latin9: %w", err)
	}
	return hex.EncodeToString([]byte(encoded)), nil
}

// FromLatin9 decodes a hex string of ISO 8859-15 bytes back to UTF-8.
func FromLatin9(hexStr string) (string, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", fmt.Errorf("decode latin9 hex: %w", err)
	}
	decoded, err := charmap.ISO8859_15.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode latin9: %w", err)
	}
	return string(decoded), nil
}
