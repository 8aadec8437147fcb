// Package color provides helpers for coloring terminal output using ANSI
// escape sequences, plus the console symbol set used for status lines.
// Functions return formatted strings; the Symbol printers decide at call
// time whether to emit escape codes based on terminal detection.
//
//nolint:revive // package name conflicts with standard library
package color

// ANSI codes
const (
	resetCode = "\033[0m"

	blackCode   = "\033[30m"
	redCode     = "\033[31m"
	greenCode   = "\033[32m"
	yellowCode  = "\033[33m"
	blueCode    = "\033[34m"
	magentaCode = "\033[35m"
	cyanCode    = "\033[36m"
	whiteCode   = "\033[37m"

	brightBlackCode   = "\033[90m"
	brightRedCode     = "\033[91m"
	brightGreenCode   = "\033[92m"
	brightYellowCode  = "\033[93m"
	brightBlueCode    = "\033[94m"
	brightMagentaCode = "\033[95m"
	brightCyanCode    = "\033[96m"
	brightWhiteCode   = "\033[97m"

	boldCode      = "\033[1m"
	dimCode       = "\033[2m"
	italicCode    = "\033[3m"
	underlineCode = "\033[4m"
	blinkCode     = "\033[5m"
	reverseCode   = "\033[7m"
	strikeCode    = "\033[9m"
)

// Color wraps text with an ANSI escape sequence.
type Color func(text string) string

// NewColor creates a color function for the given ANSI code. Empty text
// stays empty so joining styled fragments does not leave bare escapes.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		if text == "" {
			return ""
		}
		return ansiCode + text + resetCode
	}
}

// Foreground colors
var (
	Black   = NewColor(blackCode)
	Red     = NewColor(redCode)
	Green   = NewColor(greenCode)
	Yellow  = NewColor(yellowCode)
	Blue    = NewColor(blueCode)
	Magenta = NewColor(magentaCode)
	Cyan    = NewColor(cyanCode)
	White   = NewColor(whiteCode)

	// Gray is the conventional name for bright black.
	Gray          = NewColor(brightBlackCode)
	BrightBlack   = NewColor(brightBlackCode)
	BrightRed     = NewColor(brightRedCode)
	BrightGreen   = NewColor(brightGreenCode)
	BrightYellow  = NewColor(brightYellowCode)
	BrightBlue    = NewColor(brightBlueCode)
	BrightMagenta = NewColor(brightMagentaCode)
	BrightCyan    = NewColor(brightCyanCode)
	BrightWhite   = NewColor(brightWhiteCode)
)

// Text styles
var (
	Bold          = NewColor(boldCode)
	Dim           = NewColor(dimCode)
	Italic        = NewColor(italicCode)
	Underline     = NewColor(underlineCode)
	Blink         = NewColor(blinkCode)
	Reverse       = NewColor(reverseCode)
	Strikethrough = NewColor(strikeCode)
)
