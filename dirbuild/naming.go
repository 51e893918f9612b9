package dirbuild

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Snake converts a constant name to a file name: FormSection becomes
// form_section, HTTPClient http_client and Primero::User primero/user.
func Snake(typeName string) string {
	parts := strings.Split(typeName, "::")
	for i, p := range parts {
		parts[i] = snakePart(p)
	}
	return strings.Join(parts, "/")
}

func snakePart(s string) string {
	rs := []rune(s)
	var buf strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]) ||
				(i+1 < len(rs) && unicode.IsLower(rs[i+1]) && unicode.IsUpper(rs[i-1]))) {
				buf.WriteByte('_')
			}
			buf.WriteRune(unicode.ToLower(r))
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// Plural is a small English pluralizer covering the model names seed
// files are made for.
func Plural(word string) string {
	lower := strings.ToLower(word)
	switch {
	case lower == "":
		return word
	case strings.HasSuffix(lower, "information"), strings.HasSuffix(lower, "settings"):
		return word
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return word + "es"
	}
	return word + "s"
}

// FileFor is the slash separated path, relative to the destination
// directory, of batch n (1 based) of typeName's records. n == 0 means the
// records are not batched.
func FileFor(typeName string, n int) string {
	snake := Snake(typeName)
	dir, base := path.Split(snake)
	name := base + ".rb"
	if n > 0 {
		name = fmt.Sprintf("%s.%d.rb", base, n)
	}
	return path.Join(dir, Plural(base), name)
}
