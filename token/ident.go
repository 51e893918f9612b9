package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsIdent reports whether s can be written bare as a local name, a
// symbol body or a `name:` hash label.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// IsMethodName is IsIdent allowing one trailing ! or ?, as in
// create_or_update!.
func IsMethodName(s string) bool {
	if n := len(s); n > 1 && (s[n-1] == '!' || s[n-1] == '?') {
		s = s[:n-1]
	}
	return IsIdent(s)
}

// IsConstant reports whether s is a constant path such as Agency or
// Admin::Role.
func IsConstant(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, "::") {
		if seg == "" || seg[0] < 'A' || seg[0] > 'Z' || !IsIdent(seg) {
			return false
		}
	}
	return true
}
