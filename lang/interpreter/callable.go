package interpreter

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
)

// Function is a user-defined Lox function or method, a closure pairing the
// function's declaration with the environment active at the point it was
// declared (not the point it is called from), per spec.md §3's closure
// model.
type Function struct {
	decl          *ast.FunStmt
	closure       *Environment
	isInitializer bool
}

var _ Callable = (*Function)(nil)

func newFunction(decl *ast.FunStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name) }
func (f *Function) Type() string   { return "function" }
func (f *Function) Name() string   { return f.decl.Name }
func (f *Function) Arity() int     { return len(f.decl.Params) }

// Bind returns a copy of f whose closure additionally binds "this" to inst,
// used when a method is looked up via a Get expression (spec.md §4.4's
// method binding: every lookup produces a fresh bound method).
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return NilValue, nil
}

// returnSignal unwinds the Go call stack from a "return" statement back to
// the enclosing Function.Call, carrying the returned value. It is not a
// user-visible error: spec.md §4.4 requires return to use a dedicated
// control-flow signal rather than an ordinary error, so execution never
// mistakes it for a runtime failure.
type returnSignal struct{ value Value }

func (r *returnSignal) Error() string { return "return outside of a function call" }

// Native is a built-in function implemented in Go, such as clock.
type Native struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

var _ Callable = (*Native)(nil)

func (n *Native) String() string { return "<native fn>" }
func (n *Native) Type() string   { return "native function" }
func (n *Native) Name() string   { return n.name }
func (n *Native) Arity() int     { return n.arity }
func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}
