// Package env parses environment variables into typed values: booleans,
// integers, IP addresses, URLs and paths, with a string fallback. It also
// exposes typed views of the GitHub Actions environment and a report of the
// host system (distribution, container, package manager).
package env

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/huti-dev/huti/pathutil"
)

// Kind discriminates the parsed type of a Value.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	IP
	URL
	PathKind
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case IP:
		return "ip"
	case URL:
		return "url"
	case PathKind:
		return "path"
	default:
		return "string"
	}
}

// Value is the typed result of parsing a string. Kind says which field is
// set; Raw always holds the original text.
type Value struct {
	Kind Kind
	Raw  string

	Bool bool
	Int  int
	IP   netip.Addr
	URL  *url.URL
	Path pathutil.Path
}

func (v Value) String() string { return v.Raw }

// IsZero reports an empty value, i.e. parsed from the empty string.
func (v Value) IsZero() bool { return v.Raw == "" && v.Kind == String }

var (
	trueTokens  = []string{"1", "true", "yes", "on"}
	falseTokens = []string{"0", "false", "no", "off"}
)

func boolToken(s string) (bool, bool) {
	lower := strings.ToLower(s)
	for _, t := range trueTokens {
		if lower == t {
			return true, true
		}
	}
	for _, t := range falseTokens {
		if lower == t {
			return false, true
		}
	}
	return false, false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// looksLikePath matches a leading "/", "~" or "./" without a colon, or a
// bare ".". Colons exclude PATH-style lists and URLs.
func looksLikePath(s string) bool {
	if s == "." {
		return true
	}
	if strings.Contains(s, ":") {
		return false
	}
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "~") || strings.HasPrefix(s, "./")
}

// ParseString parses a string into a typed Value. Precedence: boolean
// tokens, URLs ("://" or "@"), paths, IP addresses, integers, and finally
// the string itself.
func ParseString(s string) Value {
	v := Value{Kind: String, Raw: s}
	if s == "" {
		return v
	}

	if b, ok := boolToken(s); ok {
		v.Kind = Bool
		v.Bool = b
		return v
	}

	if strings.Contains(s, "://") || strings.Contains(s, "@") {
		if u, err := url.Parse(s); err == nil {
			v.Kind = URL
			v.URL = u
			return v
		}
		return v
	}

	if looksLikePath(s) {
		v.Kind = PathKind
		v.Path = pathutil.Path(s)
		return v
	}

	if addr, err := netip.ParseAddr(s); err == nil {
		v.Kind = IP
		v.IP = addr
		return v
	}

	if isNumeric(s) {
		if n, err := strconv.Atoi(s); err == nil {
			v.Kind = Int
			v.Int = n
			return v
		}
	}

	return v
}
