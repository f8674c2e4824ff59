package interpreter

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Class is a Lox class value. Calling a Class instantiates it: Class itself
// implements Callable, with its arity taken from the "init" method (if any).
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

var _ Callable = (*Class)(nil)

func newClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{name: name, superclass: superclass, methods: methods}
}

func (c *Class) String() string { return c.name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Name() string   { return c.name }

// findMethod looks up name in this class's own methods, then its
// superclass chain, per spec.md §3/§4.4's inheritance method-chain lookup.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Instance is an instance of a Lox class: a bag of fields plus a reference
// to the class that defines its methods.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

func newInstance(c *Class) *Instance {
	return &Instance{class: c, fields: swiss.NewMap[string, Value](4)}
}

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.class.name) }
func (i *Instance) Type() string   { return "instance" }

// Get resolves a property access: fields shadow methods, and a method
// lookup produces a fresh bound method (spec.md §4.4).
func (i *Instance) Get(line int, name string) (Value, error) {
	if v, ok := i.fields.Get(name); ok {
		return v, nil
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.Bind(i), nil
	}
	return nil, newRuntimeError(line, "Undefined property '%s'.", name)
}

// Set assigns a field, creating it if it does not already exist (Lox has no
// fixed field list; any field may be set on any instance).
func (i *Instance) Set(name string, v Value) {
	i.fields.Put(name, v)
}
