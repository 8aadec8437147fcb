// Package terminal detects whether the current process talks to an
// interactive terminal and whether it should emit colors. Detection
// combines explicit user preference (COLORIZE, FORCE_COLOR, NO_COLOR,
// CLICOLOR_FORCE), CI environment detection and tty checks.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/huti-dev/huti/env"
)

// Common CI indicator variables. Presence of any marks the environment as
// non-interactive.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"TRAVIS",
	"CIRCLECI",
	"JENKINS_URL",
	"BUILD_NUMBER",
	"GITLAB_CI",
	"APPVEYOR",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// TERM values (or prefixes) known to support basic colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// Options force detection results, e.g. from command-line flags.
type Options struct {
	ForceInteractive    bool
	ForceNonInteractive bool
	ForceColor          bool
	DisableColor        bool
}

// Capabilities reports what the attached terminal can do.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

type capabilities struct {
	options Options
}

// NewCapabilities builds a Capabilities with the given overrides.
func NewCapabilities(options Options) Capabilities {
	return &capabilities{options: options}
}

// Default is the zero-option Capabilities used by package-level helpers.
var Default = NewCapabilities(Options{})

func (c *capabilities) IsInteractive() bool {
	if c.options.ForceInteractive {
		return true
	}
	if c.options.ForceNonInteractive {
		return false
	}
	if IsCIEnvironment() {
		return false
	}
	return IsTerminal()
}

// SupportsColor resolves the color decision. Priority: explicit options,
// then COLORIZE/FORCE_COLOR/NO_COLOR through env.Colorize, then
// CLICOLOR_FORCE, then tty plus TERM capability with CLICOLOR able to opt
// out.
func (c *capabilities) SupportsColor() bool {
	if c.options.ForceColor {
		return true
	}
	if c.options.DisableColor {
		return false
	}

	switch env.Colorize() {
	case env.ColorAlways:
		return true
	case env.ColorNever:
		return false
	}

	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && isTruthy(force) {
		return true
	}

	if !c.IsInteractive() || !termSupportsColor() {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}

// IsTerminal reports whether stdout and stderr are both ttys.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// IsCIEnvironment reports whether a CI system's environment is detected.
func IsCIEnvironment() bool {
	for _, name := range ciEnvVars {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if name == "CI" {
			// An explicit falsy CI does not rule out the more specific
			// indicators, so keep scanning.
			lower := strings.ToLower(strings.TrimSpace(value))
			if lower == "false" || lower == "0" || lower == "no" {
				continue
			}
		}
		return true
	}
	return false
}

func termSupportsColor() bool {
	name := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if name == "" || name == "dumb" {
		return false
	}
	for _, known := range colorTerminals {
		if name == known || strings.HasPrefix(name, known+"-") {
			return true
		}
	}
	return false
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// SupportsColor is the package-level shorthand using Default.
func SupportsColor() bool { return Default.SupportsColor() }

// IsInteractive is the package-level shorthand using Default.
func IsInteractive() bool { return Default.IsInteractive() }
