package interpreter

import "github.com/dolthub/swiss"

// Environment is one scope frame: the global environment sits at the bottom
// of the chain and lives for the process's lifetime, and a new Environment
// is pushed for each block, function call and method invocation, per
// spec.md §3. Closures share a frame by holding a pointer to it, the same
// frame an enclosing function still has active.
type Environment struct {
	enclosing *Environment
	vars      *swiss.Map[string, Value]
}

// NewEnvironment creates a scope frame enclosed by parent (nil for the
// global environment).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, vars: swiss.NewMap[string, Value](8)}
}

// Define binds name to v in this frame, shadowing any binding of the same
// name in an enclosing frame. Redefining a name already bound in this same
// frame (e.g. two top-level "var x" declarations) is allowed at runtime,
// matching spec.md's REPL-friendliness note; it is the resolver, not the
// environment, that rejects block-scoped redeclaration.
func (e *Environment) Define(name string, v Value) {
	e.vars.Put(name, v)
}

// Get looks up name in this frame and its enclosing frames, returning a
// RuntimeError at line if the name is undefined anywhere in the chain.
func (e *Environment) Get(line int, name string) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.vars.Get(name); ok {
			return v, nil
		}
	}
	return nil, newRuntimeError(line, "Undefined variable '%s'.", name)
}

// GetAt looks up name exactly `distance` frames up from this one (the
// resolver having already proven the name is bound there).
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, _ := env.vars.Get(name)
	return v
}

// Assign rebinds an existing name to v, searching this frame and its
// enclosing frames, returning a RuntimeError at line if the name is
// undefined anywhere in the chain. Unlike Define, Assign never creates a new
// binding.
func (e *Environment) Assign(line int, name string, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.vars.Get(name); ok {
			env.vars.Put(name, v)
			return nil
		}
	}
	return newRuntimeError(line, "Undefined variable '%s'.", name)
}

// AssignAt rebinds name exactly `distance` frames up from this one.
func (e *Environment) AssignAt(distance int, name string, v Value) {
	e.ancestor(distance).vars.Put(name, v)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
