package ast

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

// Block is "{ stmts... }".
type Block struct {
	Lbrace token.Pos
	Stmts  []Stmt
	Rbrace token.Pos
}

// ExprStmt is an expression used as a statement, e.g. a bare call.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt is "print expr ;".
type PrintStmt struct {
	Pos  token.Pos
	Expr Expr
}

// VarStmt is "var name = init ;" (Init is nil if the initializer was
// omitted, in which case the variable starts out bound to nil).
type VarStmt struct {
	Pos  token.Pos
	Name string
	Init Expr
}

// IfStmt is "if (cond) then else else" (Else is nil if absent).
type IfStmt struct {
	Pos  token.Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is "while (cond) body". The parser desugars `for` loops into a
// WhileStmt, wrapped in a Block with the initializer when there is one, per
// spec.md §4.2.
type WhileStmt struct {
	Pos  token.Pos
	Cond Expr
	Body Stmt
}

// FunStmt is a function (or method) declaration: "fun name(params) body".
// IsInitializer is set by the parser when this FunStmt is a class's "init"
// method, so the resolver and interpreter can special-case its return value.
type FunStmt struct {
	Pos           token.Pos
	Name          string
	Params        []string
	Body          []Stmt
	IsInitializer bool
}

// ReturnStmt is "return value ;" (Value is nil for a bare "return ;").
type ReturnStmt struct {
	Pos   token.Pos
	Value Expr
}

// ClassStmt is a class declaration, with an optional Superclass reference
// (nil if the class does not extend another).
type ClassStmt struct {
	Pos        token.Pos
	Name       string
	Superclass *Variable
	Methods    []*FunStmt
}

func (n *Block) stmtNode()      {}
func (n *ExprStmt) stmtNode()   {}
func (n *PrintStmt) stmtNode()  {}
func (n *VarStmt) stmtNode()    {}
func (n *IfStmt) stmtNode()     {}
func (n *WhileStmt) stmtNode()  {}
func (n *FunStmt) stmtNode()    {}
func (n *ReturnStmt) stmtNode() {}
func (n *ClassStmt) stmtNode()  {}

func (n *Block) Span() token.Pos      { return n.Lbrace }
func (n *ExprStmt) Span() token.Pos   { return n.Expr.Span() }
func (n *PrintStmt) Span() token.Pos  { return n.Pos }
func (n *VarStmt) Span() token.Pos    { return n.Pos }
func (n *IfStmt) Span() token.Pos     { return n.Pos }
func (n *WhileStmt) Span() token.Pos  { return n.Pos }
func (n *FunStmt) Span() token.Pos    { return n.Pos }
func (n *ReturnStmt) Span() token.Pos { return n.Pos }
func (n *ClassStmt) Span() token.Pos  { return n.Pos }

func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *ExprStmt) Walk(v Visitor)  { Walk(v, n.Expr) }
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *FunStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("block (%d stmts)", len(n.Stmts)))
}
func (n *ExprStmt) Format(f fmt.State, verb rune)   { format(f, verb, "expr stmt") }
func (n *PrintStmt) Format(f fmt.State, verb rune)  { format(f, verb, "print") }
func (n *VarStmt) Format(f fmt.State, verb rune)    { format(f, verb, "var "+n.Name) }
func (n *IfStmt) Format(f fmt.State, verb rune)     { format(f, verb, "if") }
func (n *WhileStmt) Format(f fmt.State, verb rune)  { format(f, verb, "while") }
func (n *FunStmt) Format(f fmt.State, verb rune)    { format(f, verb, "fun "+n.Name) }
func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, "return") }
func (n *ClassStmt) Format(f fmt.State, verb rune)  { format(f, verb, "class "+n.Name) }
