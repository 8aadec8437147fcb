package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorize(t *testing.T) {
	clear := func(t *testing.T) {
		for _, name := range []string{"COLORIZE", "FORCE_COLOR", "NO_COLOR"} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	t.Run("default is auto", func(t *testing.T) {
		clear(t)
		assert.Equal(t, ColorAuto, Colorize())
	})

	t.Run("COLORIZE on", func(t *testing.T) {
		clear(t)
		t.Setenv("COLORIZE", "on")
		assert.Equal(t, ColorAlways, Colorize())
	})

	t.Run("COLORIZE off wins over FORCE_COLOR", func(t *testing.T) {
		clear(t)
		t.Setenv("COLORIZE", "off")
		t.Setenv("FORCE_COLOR", "1")
		assert.Equal(t, ColorNever, Colorize())
	})

	t.Run("FORCE_COLOR", func(t *testing.T) {
		clear(t)
		t.Setenv("FORCE_COLOR", "1")
		assert.Equal(t, ColorAlways, Colorize())
	})

	t.Run("NO_COLOR", func(t *testing.T) {
		clear(t)
		t.Setenv("NO_COLOR", "")
		assert.Equal(t, ColorNever, Colorize())
	})

	t.Run("FORCE_COLOR wins over NO_COLOR", func(t *testing.T) {
		clear(t)
		t.Setenv("NO_COLOR", "1")
		t.Setenv("FORCE_COLOR", "true")
		assert.Equal(t, ColorAlways, Colorize())
	})
}
