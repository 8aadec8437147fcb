// Package logging provides a slog handler for interactive console output.
// Records are rendered as symbol-prefixed lines (✔ for info, ✘ for error)
// with coloring driven by terminal capability detection.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/huti-dev/huti/color"
	"github.com/huti-dev/huti/terminal"
)

var (
	ErrWriterRequired       = errors.New("ConsoleHandler: Writer is required")
	ErrCapabilitiesRequired = errors.New("ConsoleHandler: Capabilities is required")
)

// ConsoleHandler is a slog handler for humans: one line per record, a
// colored level symbol, the message bold and the attributes italic, written
// only when the terminal is interactive.
type ConsoleHandler struct {
	capabilities terminal.Capabilities
	writer       io.Writer
	level        slog.Leveler
	attrs        []slog.Attr
	groups       []string

	mu *sync.Mutex
}

// ConsoleHandlerOptions configures the ConsoleHandler.
type ConsoleHandlerOptions struct {
	// Level is the minimum log level to handle.
	Level slog.Leveler

	// Writer is the output destination, typically os.Stderr.
	Writer io.Writer

	// Capabilities provides terminal feature detection.
	Capabilities terminal.Capabilities

	// Force handles records even on a non-interactive terminal. Used by
	// tests and when output is piped on purpose.
	Force bool
}

// NewConsoleHandler creates a ConsoleHandler. Writer and Capabilities are
// required.
func NewConsoleHandler(opts ConsoleHandlerOptions) (*ConsoleHandler, error) {
	if opts.Writer == nil {
		return nil, ErrWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	caps := opts.Capabilities
	if opts.Force {
		caps = forced{caps}
	}
	return &ConsoleHandler{
		capabilities: caps,
		writer:       opts.Writer,
		level:        level,
		mu:           &sync.Mutex{},
	}, nil
}

// forced wraps capabilities to report an interactive terminal.
type forced struct{ terminal.Capabilities }

func (forced) IsInteractive() bool { return true }

// symbolFor maps a record level to its console symbol.
func symbolFor(level slog.Level) color.Symbol {
	switch {
	case level >= slog.LevelError:
		return color.Error
	case level >= slog.LevelWarn:
		return color.Warning
	case level >= slog.LevelInfo:
		return color.OK
	default:
		return color.Verbose
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.capabilities.IsInteractive() && level >= h.level.Level()
}

// Handle renders one record as a symbol line.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.capabilities.IsInteractive() {
		return nil
	}

	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})
	tail := strings.Join(parts, " ")

	sym := symbolFor(r.Level)
	line := sym.Plain(r.Message, tail)
	if h.capabilities.SupportsColor() {
		line = sym.Render(r.Message, tail)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.writer, line)
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// New builds a logger writing symbol lines to w at the given level,
// regardless of terminal state. Handy default for CLIs built on this
// library.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	h, _ := NewConsoleHandler(ConsoleHandlerOptions{
		Level:        level,
		Writer:       w,
		Capabilities: terminal.Default,
		Force:        true,
	})
	return slog.New(h)
}
