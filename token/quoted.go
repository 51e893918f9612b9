package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote renders s as a Ruby double quoted string literal. Interpolation
// starts (#{, #$, #@) are escaped so the literal evaluates to s exactly.
func Quote(s string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && sz <= 1 {
			return "", &EscapingError{Text: s, Offset: i}
		}
		i += sz
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		case '\f':
			buf.WriteString(`\f`)
		case '\v':
			buf.WriteString(`\v`)
		case '\a':
			buf.WriteString(`\a`)
		case '\b':
			buf.WriteString(`\b`)
		case 0x1b:
			buf.WriteString(`\e`)
		case '#':
			if i < len(s) {
				switch s[i] {
				case '{', '$', '@':
					buf.WriteByte('\\')
				}
			}
			buf.WriteByte('#')
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&buf, `\x%02X`, r)
			case r > 0x7f && !unicode.IsPrint(r):
				fmt.Fprintf(&buf, `\u{%X}`, r)
			default:
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.String(), nil
}

// Unquote evaluates the double quoted literals produced by Quote.
func Unquote(q string) (string, error) {
	if len(q) < 2 || q[0] != '"' || q[len(q)-1] != '"' {
		return "", fmt.Errorf("%w: %q", ErrUnterminated, q)
	}
	body := q[1 : len(q)-1]
	var buf strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			if c == '"' {
				return "", fmt.Errorf("%w: bare quote at %d", ErrBadEscape, i)
			}
			buf.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadEscape)
		}
		switch body[i] {
		case '"', '\\', '#':
			buf.WriteByte(body[i])
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		case 'f':
			buf.WriteByte('\f')
		case 'v':
			buf.WriteByte('\v')
		case 'a':
			buf.WriteByte('\a')
		case 'b':
			buf.WriteByte('\b')
		case 'e':
			buf.WriteByte(0x1b)
		case 'x':
			if i+3 > len(body) {
				return "", fmt.Errorf("%w: short \\x", ErrBadEscape)
			}
			n, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrBadEscape, err)
			}
			buf.WriteByte(byte(n))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end == -1 {
				return "", fmt.Errorf("%w: bad \\u", ErrBadEscape)
			}
			n, err := strconv.ParseUint(body[i+2:i+end], 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrBadEscape, err)
			}
			buf.WriteRune(rune(n))
			i += end
		default:
			return "", fmt.Errorf("%w: \\%c", ErrBadEscape, body[i])
		}
	}
	return buf.String(), nil
}
