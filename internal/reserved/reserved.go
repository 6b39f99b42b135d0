// Package reserved centralizes the target language's reserved-word list.
//
// spec.md §4.5/§9 calls this list out by name and asks that an
// implementation keep it in one place so it can be widened as the
// target language evolves; nothing else in deconst should hard-code a
// keyword.
package reserved

import "sort"

// words is the fixed reserved-word list from §4.5. A call whose
// callee resolves through a member-access property bearing one of
// these names is never a candidate call site (the reserved-word
// guard, §8.6).
var words = map[string]struct{}{
	"default": {}, "function": {}, "var": {}, "let": {}, "const": {},
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {},
	"switch": {}, "case": {}, "break": {}, "continue": {}, "return": {},
	"this": {}, "typeof": {}, "instanceof": {}, "new": {}, "delete": {},
	"void": {}, "in": {}, "try": {}, "catch": {}, "finally": {},
	"throw": {}, "class": {}, "extends": {}, "super": {}, "import": {},
	"export": {}, "null": {}, "true": {}, "false": {}, "undefined": {},
	"NaN": {}, "Infinity": {},
}

// Is reports whether name is a reserved word of the target language.
func Is(name string) bool {
	_, ok := words[name]
	return ok
}

// All returns a copy of the reserved-word list, sorted for stable
// output (used by `deconst print --show-pattern`).
func All() []string {
	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
