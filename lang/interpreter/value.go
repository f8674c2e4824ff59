// Package interpreter implements the tree-walking evaluator of spec.md §4.4:
// given a resolved statement list, it executes it directly against an AST,
// maintaining the environment/closure/class/instance runtime model.
package interpreter

import (
	"fmt"
	"strconv"
)

// Value is the interface implemented by every runtime value a Lox program
// can produce: Bool, Number, String, Nil, and the various Callable and
// instance types declared elsewhere in this package.
type Value interface {
	// String returns the value's "print"/"stringify" representation, per
	// spec.md §4.4's printing rules.
	String() string

	// Type returns a short, human-readable type name (e.g. "number").
	Type() string
}

// Bool is the Lox boolean value.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Type() string   { return "boolean" }

// Number is the Lox numeric value: every Lox number is a float64, there is
// no separate integer type.
type Number float64

func (n Number) String() string {
	// Lox prints a number with no fractional part as an integer, e.g. "3"
	// rather than "3.000000" or "3e+00".
	if n == Number(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
func (n Number) Type() string { return "number" }

// String is the Lox string value.
type String string

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Nil is the singleton Lox nil value.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// NilValue is the only instance of Nil ever constructed.
var NilValue = Nil{}

// Truthy reports whether v is "truthy" per spec.md §4.4: everything is
// truthy except nil and the boolean false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether x and y are equal per spec.md §4.4: values of
// different Go types are never equal (in particular, Number(1) and "1" are
// not equal), nil equals only nil, and Callable/instance values compare by
// identity.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case Nil:
		_, ok := y.(Nil)
		return ok
	case Bool:
		yb, ok := y.(Bool)
		return ok && x == yb
	case Number:
		yn, ok := y.(Number)
		return ok && x == yn
	case String:
		ys, ok := y.(String)
		return ok && x == ys
	default:
		return x == y // identity equality for callables/instances
	}
}

// Callable is implemented by every value that may appear as the callee of a
// call expression: user-defined functions, bound methods, classes
// (instantiation) and native functions.
type Callable interface {
	Value
	// Name is the callable's name, used in stringification and diagnostics.
	Name() string
	// Arity is the number of arguments the callable expects.
	Arity() int
	// Call invokes the callable with the given already-evaluated arguments.
	Call(in *Interpreter, args []Value) (Value, error)
}

// RuntimeError is a Lox runtime error: an operation on values that
// type-checked syntactically but not semantically (e.g. adding a number to a
// string), or a failed lookup (undefined variable or property). It carries
// the source line so the driver can format it per spec.md §6 as
// "<message>\n[line N]".
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}
