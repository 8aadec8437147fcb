package color

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huti-dev/huti/terminal"
)

// Symbol is a colored status glyph for console messages, printed as
// "SYM first: other" with the first segment bold and the remainder italic.
type Symbol struct {
	Glyph string
	Color Color
	Blink bool
}

var (
	// OK: green check mark.
	OK = Symbol{Glyph: "✔", Color: Green}
	// Error: red cross.
	Error = Symbol{Glyph: "✘", Color: Red}
	// Critical: blinking red cross.
	Critical = Symbol{Glyph: "✘", Color: Red, Blink: true}
	// Warning: yellow exclamation.
	Warning = Symbol{Glyph: "！", Color: Yellow}
	// Notice: cyan double exclamation.
	Notice = Symbol{Glyph: "‼", Color: Cyan}
	// Success: blue bullseye.
	Success = Symbol{Glyph: "◉", Color: Blue}
	// Verbose: magenta plus.
	Verbose = Symbol{Glyph: "＋", Color: Magenta}
	// Wait: yellow ellipsis.
	Wait = Symbol{Glyph: "…", Color: Yellow}
	// Minus: red minus.
	Minus = Symbol{Glyph: "－", Color: Red}
	// Plus: red plus.
	Plus = Symbol{Glyph: "+", Color: Red}
	// More: magenta chevron.
	More = Symbol{Glyph: ">", Color: Magenta}
	// Multiply: blue multiplication sign.
	Multiply = Symbol{Glyph: "×", Color: Blue}
)

// Render formats the symbol line with ANSI styles. A non-empty other is
// appended to first with the separator (":" when empty).
func (s Symbol) Render(first, other string) string {
	return s.format(first, other, ":", true)
}

// Plain formats the symbol line without any escape codes.
func (s Symbol) Plain(first, other string) string {
	return s.format(first, other, ":", false)
}

func (s Symbol) format(first, other, separator string, colorize bool) string {
	glyph := s.Glyph
	head := first
	if other != "" {
		head += separator
	}
	tail := other

	if colorize {
		glyph = Bold(s.Color(glyph))
		if s.Blink {
			glyph = Blink(glyph)
		}
		head = Bold(head)
		tail = Italic(tail)
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{glyph, head, tail} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Print writes the symbol line to stderr, colorized when the terminal
// supports it.
func (s Symbol) Print(first, other string) {
	s.Fprint(os.Stderr, first, other)
}

// Fprint writes the symbol line to w. Escape codes follow the terminal
// color decision, so redirected output stays clean.
func (s Symbol) Fprint(w io.Writer, first, other string) {
	if terminal.SupportsColor() {
		fmt.Fprintln(w, s.Render(first, other))
		return
	}
	fmt.Fprintln(w, s.Plain(first, other))
}
