// Package normalizer implements C1, the Literal Normalizer.
//
// It runs on raw source text before parsing and rewrites the textual
// idiom `"<chars>".split("").reverse().join("")` to the string literal
// it computes to, per spec.md §4.1. This is pure text surgery: no
// syntax tree is involved, which is why it lives upstream of
// internal/parser rather than as an AST pass.
package normalizer

import (
	"regexp"
	"strings"
)

// pattern matches a double-quoted string literal (no unescaped
// double quote inside) immediately followed by the reversed-string
// idiom. Captured group 1 is the literal's raw content.
var pattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"\.split\(""\)\.reverse\(\)\.join\(""\)`)

// Normalize applies C1 to src. It is idempotent (spec.md §8.2): the
// replacement text never itself matches pattern, since it contains no
// `.split("").reverse().join("")` suffix.
func Normalize(src string) string {
	return pattern.ReplaceAllStringFunc(src, func(match string) string {
		sub := pattern.FindStringSubmatch(match)
		chars := sub[1]
		return `"` + reverse(chars) + `"`
	})
}

func reverse(s string) string {
	runes := []rune(s)
	var units []string
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			// Keep an escape sequence together so it survives reversal.
			units = append(units, string(runes[i:i+2]))
			i++
			continue
		}
		units = append(units, string(runes[i]))
	}
	var sb strings.Builder
	for i := len(units) - 1; i >= 0; i-- {
		sb.WriteString(units[i])
	}
	return sb.String()
}

// IsIdempotent is a small self-check used by tests:
// Normalize(Normalize(s)) must equal Normalize(s).
func IsIdempotent(src string) bool {
	once := Normalize(src)
	return strings.Compare(once, Normalize(once)) == 0
}
