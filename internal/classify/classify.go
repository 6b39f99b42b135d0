// Package classify implements C3, the Helper Classifier.
//
// One traversal collects every node that defines a name matched by
// intercept_pattern, independent of the argument-count window (which
// gates rewriting, not extraction, per spec.md §4.3).
package classify

import (
	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/config"
)

// Kind distinguishes a named function declaration from a
// function-valued binding (spec.md §3's two Helper-defining shapes).
type Kind int

const (
	KindDeclaration Kind = iota
	KindBinding
)

// Helper is one entry of H: a matched name together with its
// defining node and the shape it was defined with.
type Helper struct {
	Name node
	Kind Kind
	// Decl is set when Kind == KindDeclaration.
	Decl *ast.FunctionDeclaration
	// Binding is set when Kind == KindBinding: the VarStatement whose
	// Value is the FunctionLiteral.
	Binding *ast.VarStatement
}

type node = string

// Set is H: the map from helper name to its Helper record. Names are
// assumed unique within one program (spec.md does not model
// redeclaration).
type Set map[string]*Helper

// Classify performs C3's single traversal over program and returns H.
func Classify(program *ast.Program, cfg config.Config) Set {
	h := make(Set)
	ast.Walk(program, func(n ast.Node, _ []ast.Node) bool {
		switch decl := n.(type) {
		case *ast.FunctionDeclaration:
			if decl.Name != nil && cfg.MatchesIntercept(decl.Name.Value) {
				h[decl.Name.Value] = &Helper{Name: decl.Name.Value, Kind: KindDeclaration, Decl: decl}
			}
		case *ast.VarStatement:
			if fl, ok := decl.Value.(*ast.FunctionLiteral); ok && cfg.MatchesIntercept(decl.Name.Value) {
				h[decl.Name.Value] = &Helper{Name: decl.Name.Value, Kind: KindBinding, Binding: decl, Decl: syntheticDecl(decl.Name.Value, fl)}
			}
		}
		return true
	})
	return h
}

// syntheticDecl lets the rest of the pipeline (dependency resolution,
// evaluation assembly) treat a function-valued binding uniformly with
// a function declaration: both end up as something with a name,
// parameters, and a body. The binding's own VarStatement remains the
// node C7/C8 operate on for rewrite/cleanup purposes (Helper.Binding).
func syntheticDecl(name string, fl *ast.FunctionLiteral) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		Token:      fl.Token,
		Name:       &ast.Identifier{Token: fl.Token, Value: name},
		Parameters: fl.Parameters,
		Body:       fl.Body,
	}
}

// Body returns the name's body (declaration or binding, uniformly),
// or nil if not found.
func (s Set) Body(name string) *ast.BlockStatement {
	if h, ok := s[name]; ok && h.Decl != nil {
		return h.Decl.Body
	}
	return nil
}
