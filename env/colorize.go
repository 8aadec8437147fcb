package env

import "os"

// ColorMode is the user's color preference for console output.
type ColorMode int

const (
	// ColorAuto defers to terminal detection.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors even when output is not a terminal.
	ColorAlways
	// ColorNever disables colors unconditionally.
	ColorNever
)

// Colorize resolves the color preference from the environment. COLORIZE
// wins, then FORCE_COLOR, then NO_COLOR (set to anything, per the
// convention at no-color.org); otherwise auto.
func Colorize() ColorMode {
	if v, ok := Lookup("COLORIZE"); ok && v.Kind == Bool {
		if v.Bool {
			return ColorAlways
		}
		return ColorNever
	}
	if v, ok := Lookup("FORCE_COLOR"); ok && v.Kind == Bool && v.Bool {
		return ColorAlways
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return ColorNever
	}
	return ColorAuto
}
