package color

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolPlain(t *testing.T) {
	tests := []struct {
		name  string
		sym   Symbol
		first string
		other string
		want  string
	}{
		{"glyph only", OK, "", "", "✔"},
		{"first only", OK, "Install", "", "✔ Install"},
		{"first and other", OK, "Install", "Complete", "✔ Install: Complete"},
		{"error", Error, "boom", "", "✘ boom"},
		{"warning", Warning, "careful", "now", "！ careful: now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sym.Plain(tt.first, tt.other))
		})
	}
}

func TestSymbolRender(t *testing.T) {
	got := OK.Render("Install", "Complete")
	assert.Contains(t, got, "✔")
	assert.Contains(t, got, "\033[1m")
	assert.Contains(t, got, "\033[3m")
	assert.Contains(t, got, "\033[32m")
	assert.Contains(t, got, "Install:")

	// Critical blinks.
	assert.Contains(t, Critical.Render("", ""), "\033[5m")
	assert.NotContains(t, Error.Render("", ""), "\033[5m")
}

func TestSymbolFprint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	os.Unsetenv("COLORIZE")
	os.Unsetenv("FORCE_COLOR")

	var buf bytes.Buffer
	OK.Fprint(&buf, "Install", "Complete")
	assert.Equal(t, "✔ Install: Complete\n", buf.String())

	t.Setenv("COLORIZE", "1")
	buf.Reset()
	OK.Fprint(&buf, "Install", "")
	assert.Contains(t, buf.String(), "\033[32m")
}
