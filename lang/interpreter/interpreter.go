package interpreter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// Interpreter walks a resolved statement list and executes it directly,
// maintaining the global environment for the lifetime of the process (or
// REPL session), per spec.md §3 and §5.
type Interpreter struct {
	// Stdout and Stdin are the standard I/O abstractions used by "print" and
	// the getchar native. If nil, os.Stdout/os.Stdin are used, mirroring the
	// teacher's Thread.Stdout/Stdin fields in lang/machine/thread.go. Stderr
	// is stored but never written by the interpreter: runtime errors are
	// returned from Run for the caller to report.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	globals *Environment
	env     *Environment
	locals  map[ast.ExprID]int

	ctx context.Context
}

// New creates an Interpreter with its global environment populated with the
// native functions of spec.md §4.4/§10.
func New() *Interpreter {
	in := &Interpreter{globals: NewEnvironment(nil), ctx: context.Background()}
	in.env = in.globals
	defineNatives(in.globals)
	return in
}

func (in *Interpreter) stdout() io.Writer {
	if in.Stdout != nil {
		return in.Stdout
	}
	return os.Stdout
}

func (in *Interpreter) stdin() io.Reader {
	if in.Stdin != nil {
		return in.Stdin
	}
	return os.Stdin
}

// Run executes stmts against the interpreter's (persistent) global
// environment, using locals as the scope-distance table produced by
// lang/resolver. ctx is polled before each statement is executed so a
// long-running or non-terminating program (e.g. "while (true) {}") can be
// cancelled cooperatively from outside, the same
// cooperative-cancellation model as the teacher's Thread.
func (in *Interpreter) Run(ctx context.Context, locals map[ast.ExprID]int, stmts []ast.Stmt) error {
	if ctx == nil {
		ctx = context.Background()
	}
	in.ctx = ctx
	in.locals = locals
	for _, s := range stmts {
		if err := in.checkCancelled(); err != nil {
			return err
		}
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) checkCancelled() error {
	select {
	case <-in.ctx.Done():
		return in.ctx.Err()
	default:
		return nil
	}
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	if err := in.checkCancelled(); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))

	case *ast.ExprStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout(), v.String())
		return nil

	case *ast.VarStmt:
		var v Value = NilValue
		if s.Init != nil {
			var err error
			v, err = in.evaluate(s.Init)
			if err != nil {
				return err
			}
		}
		in.env.Define(s.Name, v)
		return nil

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.execute(s.Then)
		} else if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunStmt:
		in.env.Define(s.Name, newFunction(s, in.env, false))
		return nil

	case *ast.ReturnStmt:
		var v Value = NilValue
		if s.Value != nil {
			var err error
			v, err = in.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.ClassStmt:
		return in.executeClass(s)

	default:
		panic(fmt.Sprintf("interpreter: unexpected statement %T", stmt))
	}
}

func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var super *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		super, ok = v.(*Class)
		if !ok {
			return newRuntimeError(int(s.Superclass.NamePos), "Superclass must be a class.")
		}
	}

	in.env.Define(s.Name, NilValue)

	defEnv := in.env
	if super != nil {
		defEnv = NewEnvironment(in.env)
		defEnv.Define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name] = newFunction(m, defEnv, m.IsInitializer)
	}

	class := newClass(s.Name, super, methods)
	in.env.Assign(int(s.Pos), s.Name, class)
	return nil
}

// executeBlock runs stmts in the given environment, restoring the
// interpreter's previous environment on exit (including on error/panic
// unwinds through a return signal).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Val), nil

	case *ast.Grouping:
		return in.evaluate(e.Expr)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookUpVariable(e.ID(), e.NamePos, e.Name)

	case *ast.Assign:
		return in.evalAssign(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookUpVariable(e.ID(), e.Pos, "this")

	case *ast.Super:
		return in.evalSuper(e)

	default:
		panic(fmt.Sprintf("interpreter: unexpected expression %T", expr))
	}
}

func literalValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return NilValue
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	default:
		panic(fmt.Sprintf("interpreter: unexpected literal %T", v))
	}
}

// lookUpVariable resolves a Variable/This reference: if the resolver
// recorded a scope distance for id, the binding is looked up at exactly that
// distance; otherwise it is assumed global, per spec.md §4.4.
func (in *Interpreter) lookUpVariable(id ast.ExprID, pos token.Pos, name string) (Value, error) {
	if distance, ok := in.locals[id]; ok {
		return in.env.GetAt(distance, name), nil
	}
	return in.globals.Get(int(pos), name)
}
