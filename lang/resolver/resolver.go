// Package resolver implements the static resolver of spec.md §4.3: it walks
// a parsed statement list once, before execution, computing how many
// enclosing scopes separate each variable reference from the scope that
// declares it, and rejecting a fixed set of statically-detectable errors
// (return outside a function, this/super outside a class, and so on).
package resolver

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// Resolve walks stmts and returns a table mapping each expression's ExprID
// to the number of enclosing scopes to skip to find its binding (0 meaning
// "the current innermost scope"). An ExprID absent from the table refers to
// a global, resolved at runtime by direct lookup in the global environment.
// The returned error, if non-nil, is a scanner.ErrorList.
func Resolve(filename string, stmts []ast.Stmt) (map[ast.ExprID]int, error) {
	r := &resolver{filename: filename, locals: make(map[ast.ExprID]int)}
	r.resolveStmts(stmts)
	r.errors.Sort()
	return r.locals, r.errors.Err()
}

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

type resolver struct {
	filename string
	errors   scanner.ErrorList
	locals   map[ast.ExprID]int

	// scopes is the stack of local scopes, innermost last, spanning every
	// enclosing function, class and block (so a closure resolves names of its
	// enclosing functions). The top-level program body has no scope: an
	// empty stack means a name is resolved as global. Each scope maps a name
	// to whether its declaration has finished (false while resolving its own
	// initializer, guarding against "var a = a;").
	scopes []map[string]bool

	curFunction functionKind
	curClass    classKind
}

func (r *resolver) errorf(pos token.Pos, msg string) {
	r.errors.Add(scanner.Position(r.filename, int(pos)), "Error: "+msg)
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) declare(pos token.Pos, name string) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name]; ok {
		r.errorf(pos, "Already a variable with this name in this scope.")
	}
	scope[name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal records, for the given expression, the number of scopes
// between the innermost and the one declaring name, if any is found.
func (r *resolver) resolveLocal(id ast.ExprID, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any local scope: resolved as global at runtime.
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Pos, s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.FunStmt:
		r.declare(s.Pos, s.Name)
		r.define(s.Name)
		kind := fnFunction
		if s.IsInitializer {
			kind = fnInitializer
		}
		r.resolveFunction(s, kind)

	case *ast.ClassStmt:
		enclosingClass := r.curClass
		r.curClass = classClass
		defer func() { r.curClass = enclosingClass }()

		r.declare(s.Pos, s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name == s.Name {
				r.errorf(s.Superclass.NamePos, "A class can't inherit from itself.")
			}
			r.curClass = classSubclass
			r.resolveExpr(s.Superclass)

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, m := range s.Methods {
			kind := fnMethod
			if m.IsInitializer {
				kind = fnInitializer
			}
			r.resolveFunction(m, kind)
		}

		r.endScope()
		if s.Superclass != nil {
			r.endScope()
		}

	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	case *ast.ReturnStmt:
		if r.curFunction == fnNone {
			r.errorf(s.Pos, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.curFunction == fnInitializer {
				r.errorf(s.Pos, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	}
}

func (r *resolver) resolveFunction(fn *ast.FunStmt, kind functionKind) {
	enclosingFunction := r.curFunction
	r.curFunction = kind
	defer func() { r.curFunction = enclosingFunction }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(fn.Pos, p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				r.errorf(e.NamePos, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ID(), e.Name)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID(), e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Expr)

	case *ast.Literal:
		// nothing to resolve

	case *ast.This:
		if r.curClass == classNone {
			r.errorf(e.Pos, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.ID(), "this")

	case *ast.Super:
		switch r.curClass {
		case classNone:
			r.errorf(e.Pos, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorf(e.Pos, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e.ID(), "super")
	}
}
