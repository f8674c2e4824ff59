// Package ast defines the abstract syntax tree produced by lang/parser and
// consumed by lang/resolver and lang/interpreter.
package ast

import (
	"fmt"
	"strings"

	"github.com/mna/lox/lang/token"
)

// ExprID uniquely identifies an expression node. The resolver keys its
// scope-distance table by ExprID rather than by pointer identity, so that
// two distinct *Variable nodes referring to the same name at different call
// sites are never confused with each other.
type ExprID int64

var nextExprID ExprID

// NewExprID returns a fresh, process-wide unique ExprID. Called exactly once
// per expression node constructed by the parser.
func NewExprID() ExprID {
	nextExprID++
	return nextExprID
}

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a short,
	// single-line description of itself (used by lang/ast/printer.go and by
	// %v in tests); only the 'v' and 's' verbs are supported.
	fmt.Formatter

	// Span reports the line the node starts on.
	Span() token.Pos

	// Walk visits the node's children, if any, with v.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	exprNode()

	// ID returns the expression's unique identity, used as the resolver's
	// scope-distance table key.
	ID() ExprID
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmtNode()
}

func format(f fmt.State, verb rune, label string) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(ast)", verb)
		return
	}
	label = strings.ReplaceAll(label, "\n", "⏎")
	fmt.Fprint(f, label)
}
