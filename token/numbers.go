package token

// IsNumber reports whether s is a Ruby numeric literal: optional sign,
// then either a decimal integer or float (digits with single underscores
// between them, optional fraction and exponent, a fraction needs digits
// on both sides of the dot) or an integer with a 0x, 0b, 0o or 0d radix
// prefix. Integers and plain floats may end in r, i or ri; floats with
// an exponent only in i.
//
// A bare leading zero is rejected: Ruby reads 017 as octal where YAML
// and JSON read a decimal, so such literals must spell out 0o17.
func IsNumber(s string) bool {
	i, n := 0, len(s)
	if i < n && (s[i] == '-' || s[i] == '+') {
		i++
	}
	if i+2 < n && s[i] == '0' {
		if isDigit := radix(s[i+1]); isDigit != nil {
			j := run(s, i+2, isDigit)
			return j > i+2 && suffix(s[j:], true)
		}
	}
	j := run(s, i, isDec)
	if j == i {
		return false
	}
	if j-i > 1 && s[i] == '0' {
		return false
	}
	i = j
	if i < n && s[i] == '.' {
		j = run(s, i+1, isDec)
		if j == i+1 {
			return false
		}
		i = j
	}
	exp := false
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		exp = true
		i++
		if i < n && (s[i] == '-' || s[i] == '+') {
			i++
		}
		j = run(s, i, isDec)
		if j == i {
			return false
		}
		i = j
	}
	return suffix(s[i:], !exp)
}

func suffix(rest string, rational bool) bool {
	switch rest {
	case "", "i":
		return true
	case "r", "ri":
		return rational
	}
	return false
}

func radix(c byte) func(byte) bool {
	switch c {
	case 'x', 'X':
		return isHex
	case 'b', 'B':
		return func(c byte) bool { return c == '0' || c == '1' }
	case 'o', 'O':
		return func(c byte) bool { return c >= '0' && c <= '7' }
	case 'd', 'D':
		return isDec
	}
	return nil
}

func isDec(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDec(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// run returns the end of a run of digits starting at i, allowing single
// underscores between digits.
func run(s string, i int, isDigit func(byte) bool) int {
	start := i
	for i < len(s) {
		c := s[i]
		switch {
		case isDigit(c):
			i++
		case c == '_' && i > start && i+1 < len(s) && isDigit(s[i+1]):
			i++
		default:
			return i
		}
	}
	return i
}
