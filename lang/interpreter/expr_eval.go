package interpreter

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.BANG:
		return Bool(!Truthy(right)), nil
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, newRuntimeError(int(e.OpPos), "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("interpreter: unexpected unary operator")
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	line := int(e.OpPos)
	switch e.Op {
	case token.BANGEQ:
		return Bool(!Equal(left, right)), nil
	case token.EQEQ:
		return Bool(Equal(left, right)), nil
	case token.PLUS:
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		return nil, newRuntimeError(line, "Operands must be two numbers or two strings.")
	case token.MINUS, token.SLASH, token.STAR, token.GT, token.GTEQ, token.LT, token.LTEQ:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, newRuntimeError(line, "Operands must be numbers.")
		}
		switch e.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.GT:
			return Bool(ln > rn), nil
		case token.GTEQ:
			return Bool(ln >= rn), nil
		case token.LT:
			return Bool(ln < rn), nil
		case token.LTEQ:
			return Bool(ln <= rn), nil
		}
	}
	panic("interpreter: unexpected binary operator")
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.OR:
		if Truthy(left) {
			return left, nil
		}
	case token.AND:
		if !Truthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalAssign(e *ast.Assign) (Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[e.ID()]; ok {
		in.env.AssignAt(distance, e.Name, v)
		return v, nil
	}
	if err := in.globals.Assign(int(e.Eq), e.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(int(e.Lparen), "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(int(e.Lparen), "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(int(e.NamePos), "Only instances have properties.")
	}
	return inst.Get(int(e.NamePos), e.Name)
}

func (in *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(int(e.NamePos), "Only instances have fields.")
	}
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance := in.locals[e.ID()]
	super := in.env.GetAt(distance, "super").(*Class)
	this := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := super.findMethod(e.Method)
	if !ok {
		return nil, newRuntimeError(int(e.MethodPos), "Undefined property '%s'.", e.Method)
	}
	return method.Bind(this), nil
}
