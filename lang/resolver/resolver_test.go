package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, err := parser.Parse("test.lox", []byte(src))
	require.NoError(t, err)
	return stmts
}

func TestResolveLocalDistance(t *testing.T) {
	stmts := mustParse(t, `
		var a = 1;
		{
			var a = 2;
			print a;
		}
	`)
	locals, err := resolver.Resolve("test.lox", stmts)
	require.NoError(t, err)

	block := stmts[1].(*ast.Block)
	printStmt := block.Stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.Variable)

	dist, ok := locals[v.ID()]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveGlobalIsNotInLocalsTable(t *testing.T) {
	stmts := mustParse(t, `
		var a = 1;
		print a;
	`)
	locals, err := resolver.Resolve("test.lox", stmts)
	require.NoError(t, err)

	printStmt := stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.Variable)
	_, ok := locals[v.ID()]
	assert.False(t, ok, "a top-level global is resolved at runtime, not via the locals table")
}

func TestResolveReturnOutsideFunctionIsAnError(t *testing.T) {
	stmts := mustParse(t, "return 1;")
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolveReturnValueFromInitializerIsAnError(t *testing.T) {
	stmts := mustParse(t, `
		class C {
			init() {
				return 1;
			}
		}
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestResolveBareReturnFromInitializerIsFine(t *testing.T) {
	stmts := mustParse(t, `
		class C {
			init() {
				return;
			}
		}
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	assert.NoError(t, err)
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	stmts := mustParse(t, "print this;")
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolveSuperOutsideClassIsAnError(t *testing.T) {
	stmts := mustParse(t, "print super.foo;")
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super' outside of a class.")
}

func TestResolveSuperInClassWithNoSuperclassIsAnError(t *testing.T) {
	stmts := mustParse(t, `
		class C {
			m() {
				super.m();
			}
		}
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'super' in a class with no superclass.")
}

func TestResolveRedeclarationInSameScopeIsAnError(t *testing.T) {
	stmts := mustParse(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestResolveRedeclarationAtGlobalScopeIsFine(t *testing.T) {
	stmts := mustParse(t, `
		var a = 1;
		var a = 2;
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	assert.NoError(t, err, "shadowing at global scope is allowed, unlike in a block")
}

func TestResolveSelfReadInOwnInitializerIsAnError(t *testing.T) {
	stmts := mustParse(t, `
		var a = 1;
		{
			var a = a;
		}
	`)
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestResolveSelfInheritingClassIsAnError(t *testing.T) {
	stmts := mustParse(t, "class Oops < Oops {}")
	_, err := resolver.Resolve("test.lox", stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

func TestResolveSuperAndThisAreAdjacentScopes(t *testing.T) {
	stmts := mustParse(t, `
		class A {
			m() { print 1; }
		}
		class B < A {
			m() {
				super.m();
			}
		}
	`)
	locals, err := resolver.Resolve("test.lox", stmts)
	require.NoError(t, err)

	classB := stmts[1].(*ast.ClassStmt)
	method := classB.Methods[0]
	exprStmt := method.Body[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	super := call.Callee.(*ast.Super)

	superDist, ok := locals[super.ID()]
	require.True(t, ok)
	// scopes during the call are [superScope, thisScope, paramScope]: "super"
	// lives two scopes out from the method body's own parameter scope.
	assert.Equal(t, 2, superDist)
}
