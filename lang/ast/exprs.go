package ast

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

// Literal is a boolean, number, string or nil literal. Val holds the parsed
// value: bool, float64, string, or nil.
type Literal struct {
	ExprID ExprID
	Pos    token.Pos
	Val    any
}

// Grouping is a parenthesized expression, kept as a distinct node (rather
// than being collapsed away) so printing and erroring can refer to "(...)".
type Grouping struct {
	ExprID ExprID
	Lparen token.Pos
	Expr   Expr
}

// Unary is a prefix "!" or "-" expression.
type Unary struct {
	ExprID ExprID
	OpPos  token.Pos
	Op     token.Token // BANG or MINUS
	Right  Expr
}

// Binary is an arithmetic, comparison or equality expression.
type Binary struct {
	ExprID ExprID
	Left   Expr
	OpPos  token.Pos
	Op     token.Token
	Right  Expr
}

// Logical is "and"/"or", kept distinct from Binary because its right operand
// is evaluated conditionally (short-circuit).
type Logical struct {
	ExprID ExprID
	Left   Expr
	OpPos  token.Pos
	Op     token.Token // AND or OR
	Right  Expr
}

// Variable is a bare identifier used as an expression.
type Variable struct {
	ExprID  ExprID
	NamePos token.Pos
	Name    string
}

// Assign is "name = value".
type Assign struct {
	ExprID  ExprID
	NamePos token.Pos
	Name    string
	Eq      token.Pos
	Value   Expr
}

// Call is "callee(args...)".
type Call struct {
	ExprID ExprID
	Callee Expr
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

// Get is "object.name", a property access.
type Get struct {
	ExprID  ExprID
	Object  Expr
	Dot     token.Pos
	Name    string
	NamePos token.Pos
}

// Set is "object.name = value", a property assignment.
type Set struct {
	ExprID  ExprID
	Object  Expr
	Dot     token.Pos
	Name    string
	NamePos token.Pos
	Eq      token.Pos
	Value   Expr
}

// This is the "this" keyword used as an expression, valid only inside a
// method body.
type This struct {
	ExprID ExprID
	Pos    token.Pos
}

// Super is "super.method", valid only inside a subclass method body.
type Super struct {
	ExprID    ExprID
	Pos       token.Pos
	Method    string
	MethodPos token.Pos
}

func (n *Literal) exprNode()  {}
func (n *Grouping) exprNode() {}
func (n *Unary) exprNode()    {}
func (n *Binary) exprNode()   {}
func (n *Logical) exprNode()  {}
func (n *Variable) exprNode() {}
func (n *Assign) exprNode()   {}
func (n *Call) exprNode()     {}
func (n *Get) exprNode()      {}
func (n *Set) exprNode()      {}
func (n *This) exprNode()     {}
func (n *Super) exprNode()    {}

func (n *Literal) ID() ExprID  { return n.ExprID }
func (n *Grouping) ID() ExprID { return n.ExprID }
func (n *Unary) ID() ExprID    { return n.ExprID }
func (n *Binary) ID() ExprID   { return n.ExprID }
func (n *Logical) ID() ExprID  { return n.ExprID }
func (n *Variable) ID() ExprID { return n.ExprID }
func (n *Assign) ID() ExprID   { return n.ExprID }
func (n *Call) ID() ExprID     { return n.ExprID }
func (n *Get) ID() ExprID      { return n.ExprID }
func (n *Set) ID() ExprID      { return n.ExprID }
func (n *This) ID() ExprID     { return n.ExprID }
func (n *Super) ID() ExprID    { return n.ExprID }

func (n *Literal) Span() token.Pos  { return n.Pos }
func (n *Grouping) Span() token.Pos { return n.Lparen }
func (n *Unary) Span() token.Pos    { return n.OpPos }
func (n *Binary) Span() token.Pos   { return n.Left.Span() }
func (n *Logical) Span() token.Pos  { return n.Left.Span() }
func (n *Variable) Span() token.Pos { return n.NamePos }
func (n *Assign) Span() token.Pos   { return n.NamePos }
func (n *Call) Span() token.Pos     { return n.Callee.Span() }
func (n *Get) Span() token.Pos      { return n.Object.Span() }
func (n *Set) Span() token.Pos      { return n.Object.Span() }
func (n *This) Span() token.Pos     { return n.Pos }
func (n *Super) Span() token.Pos    { return n.Pos }

func (n *Literal) Walk(_ Visitor) {}
func (n *Grouping) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *Unary) Walk(v Visitor)    { Walk(v, n.Right) }
func (n *Binary) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *Logical) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *Variable) Walk(_ Visitor) {}
func (n *Assign) Walk(v Visitor)   { Walk(v, n.Value) }
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *Get) Walk(v Visitor) { Walk(v, n.Object) }
func (n *Set) Walk(v Visitor) {
	Walk(v, n.Object)
	Walk(v, n.Value)
}
func (n *This) Walk(_ Visitor)  {}
func (n *Super) Walk(_ Visitor) {}

func (n *Literal) Format(f fmt.State, verb rune)  { format(f, verb, fmt.Sprintf("literal %#v", n.Val)) }
func (n *Grouping) Format(f fmt.State, verb rune) { format(f, verb, "group") }
func (n *Unary) Format(f fmt.State, verb rune)    { format(f, verb, "unary "+n.Op.String()) }
func (n *Binary) Format(f fmt.State, verb rune)   { format(f, verb, "binary "+n.Op.String()) }
func (n *Logical) Format(f fmt.State, verb rune)  { format(f, verb, "logical "+n.Op.String()) }
func (n *Variable) Format(f fmt.State, verb rune) { format(f, verb, "var "+n.Name) }
func (n *Assign) Format(f fmt.State, verb rune)   { format(f, verb, "assign "+n.Name) }
func (n *Call) Format(f fmt.State, verb rune)     { format(f, verb, fmt.Sprintf("call (%d args)", len(n.Args))) }
func (n *Get) Format(f fmt.State, verb rune)   { format(f, verb, "get ."+n.Name) }
func (n *Set) Format(f fmt.State, verb rune)   { format(f, verb, "set ."+n.Name) }
func (n *This) Format(f fmt.State, verb rune)  { format(f, verb, "this") }
func (n *Super) Format(f fmt.State, verb rune) { format(f, verb, "super."+n.Method) }
