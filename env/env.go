package env

import (
	"os"
	"strconv"
	"strings"
)

// Variables always parsed as plain integers instead of the usual precedence,
// so "1" stays 1 rather than becoming true.
var parseAsInt = map[string]bool{
	"GITHUB_RUN_ATTEMPT": true,
	"GITHUB_RUN_ID":      true,
	"GITHUB_RUN_NUMBER":  true,
}

// Suffixes forcing integer parsing for the same reason: SUDO_UID=0 is uid 0,
// not false.
var parseAsIntSuffix = []string{"_GID", "_JOBS", "_PORT", "_UID"}

func forcedInt(name, value string) (Value, bool) {
	if value == "" || !isNumeric(value) {
		return Value{}, false
	}
	forced := parseAsInt[name]
	if !forced {
		for _, suffix := range parseAsIntSuffix {
			if strings.HasSuffix(name, suffix) {
				forced = true
				break
			}
		}
	}
	if !forced {
		return Value{}, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return Value{}, false
	}
	return Value{Kind: Int, Raw: value, Int: n}, true
}

// ParseValue parses value as if it were the environment variable name,
// honoring the forced-integer names and suffixes.
func ParseValue(name, value string) Value {
	if v, ok := forcedInt(name, value); ok {
		return v
	}
	return ParseString(value)
}

// Lookup parses the named environment variable. The second return reports
// whether the variable was set.
func Lookup(name string) (Value, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return Value{}, false
	}
	return ParseValue(name, value), true
}

// Parse parses the named environment variable, returning a zero Value when
// it is unset.
func Parse(name string) Value {
	v, _ := Lookup(name)
	return v
}

// BoolVar returns the variable parsed as a boolean, or fallback when unset
// or not a boolean token.
func BoolVar(name string, fallback bool) bool {
	v, ok := Lookup(name)
	if !ok || v.Kind != Bool {
		return fallback
	}
	return v.Bool
}

// IntVar returns the variable parsed as an integer, or fallback.
func IntVar(name string, fallback int) int {
	v, ok := Lookup(name)
	if !ok || v.Kind != Int {
		return fallback
	}
	return v.Int
}
