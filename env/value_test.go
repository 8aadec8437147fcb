package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		check func(t *testing.T, v Value)
	}{
		{"1", Bool, func(t *testing.T, v Value) { assert.True(t, v.Bool) }},
		{"0", Bool, func(t *testing.T, v Value) { assert.False(t, v.Bool) }},
		{"TrUe", Bool, func(t *testing.T, v Value) { assert.True(t, v.Bool) }},
		{"OFF", Bool, func(t *testing.T, v Value) { assert.False(t, v.Bool) }},
		{"yes", Bool, func(t *testing.T, v Value) { assert.True(t, v.Bool) }},
		{"https://github.com", URL, func(t *testing.T, v Value) {
			assert.Equal(t, "https", v.URL.Scheme)
			assert.Equal(t, "github.com", v.URL.Host)
		}},
		{"git@github.com", URL, func(t *testing.T, v Value) {
			assert.Equal(t, "git@github.com", v.URL.String())
		}},
		{"~/foo", PathKind, func(t *testing.T, v Value) { assert.Equal(t, "~/foo", string(v.Path)) }},
		{"/foo", PathKind, func(t *testing.T, v Value) { assert.Equal(t, "/foo", string(v.Path)) }},
		{"./foo", PathKind, func(t *testing.T, v Value) { assert.Equal(t, "./foo", string(v.Path)) }},
		{".", PathKind, nil},
		{"0.0.0.0", IP, func(t *testing.T, v Value) { assert.Equal(t, "0.0.0.0", v.IP.String()) }},
		{"::1", IP, func(t *testing.T, v Value) { assert.True(t, v.IP.Is6()) }},
		{"2", Int, func(t *testing.T, v Value) { assert.Equal(t, 2, v.Int) }},
		{"42", Int, func(t *testing.T, v Value) { assert.Equal(t, 42, v.Int) }},
		{"2.0", String, nil},
		// Only "./" or a bare "." marks a relative path; dotfile names
		// stay strings.
		{".bashrc", String, nil},
		{"/usr/share/man:", String, nil},
		{"plain text", String, nil},
		{"", String, func(t *testing.T, v Value) { assert.True(t, v.IsZero()) }},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := ParseString(tt.input)
			require.Equal(t, tt.kind, v.Kind, "kind for %q", tt.input)
			assert.Equal(t, tt.input, v.Raw)
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

func TestParseValue_ForcedInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  Kind
		want  int
	}{
		{"SUDO_UID", "0", Int, 0},
		{"SUDO_GID", "1", Int, 1},
		{"SERVER_PORT", "8080", Int, 8080},
		{"MAKE_JOBS", "1", Int, 1},
		{"GITHUB_RUN_ID", "1658821493", Int, 1658821493},
		{"GITHUB_RUN_ATTEMPT", "1", Int, 1},
		{"SUDO_UID", "abc", String, 0},
		{"PLAIN", "1", Bool, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			v := ParseValue(tt.name, tt.value)
			require.Equal(t, tt.kind, v.Kind)
			if tt.kind == Int {
				assert.Equal(t, tt.want, v.Int)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Setenv("HUTI_ENV_TEST", "on")
	v, ok := Lookup("HUTI_ENV_TEST")
	require.True(t, ok)
	assert.Equal(t, Bool, v.Kind)
	assert.True(t, v.Bool)

	_, ok = Lookup("HUTI_ENV_UNSET_TEST")
	assert.False(t, ok)
	assert.True(t, Parse("HUTI_ENV_UNSET_TEST").IsZero())
}

func TestBoolIntVar(t *testing.T) {
	t.Setenv("HUTI_FLAG", "no")
	assert.False(t, BoolVar("HUTI_FLAG", true))
	assert.True(t, BoolVar("HUTI_FLAG_UNSET", true))

	t.Setenv("HUTI_COUNT", "7")
	assert.Equal(t, 7, IntVar("HUTI_COUNT", 1))
	assert.Equal(t, 1, IntVar("HUTI_COUNT_UNSET", 1))
}
