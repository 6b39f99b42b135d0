// Package callee resolves the callee name of a call node, shared
// verbatim between C5 (extraction) and C7 (rewrite) per spec.md §4.7
// step 1: "Compute its callee name with the same rules as §4.5."
package callee

import (
	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/reserved"
)

// Resolve returns the callee name of call and true, or "" and false
// if the call is not nameable (an arbitrary expression callee) or its
// name resolves through a reserved word (spec.md §4.5 step 1, the
// reserved-word guard of §8.6).
func Resolve(call *ast.CallExpression) (string, bool) {
	switch c := call.Callee.(type) {
	case *ast.Identifier:
		return c.Value, true
	case *ast.MemberExpression:
		if reserved.Is(c.Property.Value) {
			return "", false
		}
		return c.Property.Value, true
	default:
		return "", false
	}
}
