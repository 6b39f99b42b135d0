package ast

// Visitor inspects a node together with its ancestor chain (closest
// ancestor last). Returning false stops descent into that node's
// children; it does not stop the overall traversal.
//
// Grounded on the traverse(visitor) contract of spec.md §4.2: "allowing
// a visitor to inspect each node with knowledge of its parent chain."
type Visitor func(node Node, ancestors []Node) bool

// Walk performs a depth-first traversal of node, calling visit on node
// and every descendant. It is the traversal C3, C4, C5 and C8 share
// (C7 uses its own type switch), so "is this call inside a try block" or
// "is this call inside an IIFE" questions are answered the same way
// everywhere.
func Walk(node Node, visit Visitor) {
	walk(node, nil, visit)
}

func walk(node Node, ancestors []Node, visit Visitor) {
	if node == nil || isNilNode(node) {
		return
	}
	if !visit(node, ancestors) {
		return
	}
	next := append(append([]Node{}, ancestors...), node)

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			walk(s, next, visit)
		}
	case *FunctionDeclaration:
		walk(n.Name, next, visit)
		for _, p := range n.Parameters {
			walk(p, next, visit)
		}
		walk(n.Body, next, visit)
	case *FunctionLiteral:
		for _, p := range n.Parameters {
			walk(p, next, visit)
		}
		walk(n.Body, next, visit)
	case *CallExpression:
		walk(n.Callee, next, visit)
		for _, a := range n.Arguments {
			walk(a, next, visit)
		}
	case *MemberExpression:
		walk(n.Object, next, visit)
		walk(n.Property, next, visit)
	case *GroupExpression:
		walk(n.Expression, next, visit)
	case *UnaryExpression:
		walk(n.Operand, next, visit)
	case *BinaryExpression:
		walk(n.Left, next, visit)
		walk(n.Right, next, visit)
	case *AssignmentExpression:
		walk(n.Target, next, visit)
		walk(n.Value, next, visit)
	case *IndexExpression:
		walk(n.Left, next, visit)
		walk(n.Index, next, visit)
	case *ArrayLiteral:
		for _, e := range n.Elements {
			walk(e, next, visit)
		}
	case *ObjectLiteral:
		for _, p := range n.Properties {
			walk(p.Key, next, visit)
			walk(p.Value, next, visit)
		}
	case *VarStatement:
		walk(n.Name, next, visit)
		if n.Value != nil {
			walk(n.Value, next, visit)
		}
	case *ReturnStatement:
		if n.ReturnValue != nil {
			walk(n.ReturnValue, next, visit)
		}
	case *ExpressionStatement:
		walk(n.Expression, next, visit)
	case *BlockStatement:
		for _, s := range n.Statements {
			walk(s, next, visit)
		}
	case *IfStatement:
		walk(n.Condition, next, visit)
		walk(n.Consequence, next, visit)
		if n.Alternative != nil {
			walk(n.Alternative, next, visit)
		}
	case *WhileStatement:
		walk(n.Condition, next, visit)
		walk(n.Body, next, visit)
	case *DoWhileStatement:
		walk(n.Body, next, visit)
		walk(n.Condition, next, visit)
	case *TryStatement:
		walk(n.Block, next, visit)
		if n.CatchParam != nil {
			walk(n.CatchParam, next, visit)
		}
		if n.CatchBlock != nil {
			walk(n.CatchBlock, next, visit)
		}
		if n.FinallyBlock != nil {
			walk(n.FinallyBlock, next, visit)
		}
	case *ThrowStatement:
		walk(n.Value, next, visit)
	case *Identifier, *StringLiteral, *IntegerLiteral, *FractionalLiteral,
		*BooleanLiteral, *NullLiteral, *AbsentLiteral, *OpaqueStatement:
		// leaves
	}
}

// isNilNode guards against a typed-nil interface (e.g. a nil
// *BlockStatement assigned to the Node interface), which a plain
// `node == nil` check does not catch.
func isNilNode(node Node) bool {
	switch n := node.(type) {
	case *FunctionDeclaration:
		return n == nil
	case *FunctionLiteral:
		return n == nil
	case *BlockStatement:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}

// Ancestors utilities used by C4/C5 to classify initializer contexts.

// AnyAncestor reports whether pred matches any node in ancestors.
func AnyAncestor(ancestors []Node, pred func(Node) bool) bool {
	for _, a := range ancestors {
		if pred(a) {
			return true
		}
	}
	return false
}

// InInitializerContext reports whether a node's ancestors place it in
// an initializer context per spec.md §4.4: inside an IIFE, inside a
// while/do-while loop, or inside a try/catch block.
func InInitializerContext(ancestors []Node) bool {
	return AnyAncestor(ancestors, func(n Node) bool {
		switch v := n.(type) {
		case *WhileStatement, *DoWhileStatement, *TryStatement:
			return true
		case *CallExpression:
			return IsIIFE(v)
		}
		return false
	})
}
