// Package routepath implements the path helpers shared by route expansion,
// scanning and configuration validation.
package routepath

import (
	"errors"
	"path"
	"strings"
)

// Custom path validation errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
	ErrQueryInPath          = errors.New("path contains query or fragment")
)

// Join joins route path elements with POSIX semantics: empty elements are
// ignored, the result is cleaned and a trailing slash on the last element is
// kept. Joining nothing yields ".".
//
//	Join("", "/about")      → "/about"
//	Join("/p", "child")     → "/p/child"
//	Join("/p", "child/")    → "/p/child/"
//	Join("/p/", "../x")     → "/x"
func Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if e != "" {
			parts = append(parts, e)
		}
	}
	joined := strings.Join(parts, "/")
	if joined == "" {
		return "."
	}

	cleaned := path.Clean(joined)
	if strings.HasSuffix(joined, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

// TrimTrailingSlashes removes every trailing "/" from p.
func TrimTrailingSlashes(p string) string {
	return strings.TrimRight(p, "/")
}

// NormalizeTrailingSlash strips trailing slashes from a non-empty path and
// appends exactly one when trailing is set. A path that ends up empty maps to
// "/" unless keepEmpty is set, which relative child paths require since they
// must never start with a slash. An empty input is returned unchanged.
func NormalizeTrailingSlash(p string, trailing, keepEmpty bool) string {
	if p == "" {
		return p
	}

	p = TrimTrailingSlashes(p)
	if trailing {
		p += "/"
	}
	if p == "" && !keepEmpty {
		return "/"
	}
	return p
}

// IsAbsolute reports whether p starts with "/".
func IsAbsolute(p string) bool {
	return strings.HasPrefix(p, "/")
}

// ValidateCustomPath checks a configured per-locale path override.
//
// The following inputs are rejected:
//   - Paths containing backslash (\)
//   - Paths containing NUL byte (literal or %00)
//   - Paths containing other control characters or unescaped spaces
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - Query strings or fragments
//   - ".." that would escape root (e.g., /../secret)
//
// Relative paths are allowed since child routes use them.
func ValidateCustomPath(p string) error {
	if strings.Contains(p, "\\") {
		return ErrBackslashInPath
	}
	if strings.Contains(p, "\x00") || strings.Contains(strings.ToUpper(p), "%00") {
		return ErrNullByteInPath
	}
	if strings.ContainsFunc(p, isInvalidPathRune) {
		return ErrInvalidPath
	}
	if strings.ContainsAny(p, "?#") {
		return ErrQueryInPath
	}
	if strings.Contains(p, "%") {
		if err := validatePercentEscapes(p); err != nil {
			return err
		}
	}
	if !IsAbsolute(p) {
		return nil
	}

	depth := 0
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if depth == 0 {
				return ErrPathEscapesRoot
			}
			depth--
		default:
			depth++
		}
	}
	return nil
}

// validatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func validatePercentEscapes(p string) error {
	i := 0
	for i < len(p) {
		if p[i] == '%' {
			if i+2 >= len(p) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(p[i+1]) || !isHexDigit(p[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

func isInvalidPathRune(r rune) bool {
	return r < 0x20 || r == 0x7f || r == ' '
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
