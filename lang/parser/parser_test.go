package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/scanner"
)

func TestParseExpressionPrecedence(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte("1 + 2 * 3;"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	es, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	bin, ok := es.Expr.(*ast.Binary)
	require.True(t, ok)

	lit, ok := bin.Left.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, float64(1), lit.Val)

	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, float64(2), rhs.Left.(*ast.Literal).Val)
	assert.Equal(t, float64(3), rhs.Right.(*ast.Literal).Val)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte(`
		var i = 0;
		for (var j = 0; j < 3; j = j + 1) print j;
	`))
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	block, ok := stmts[1].(*ast.Block)
	require.True(t, ok, "for loop desugars into a block")
	require.Len(t, block.Stmts, 2)

	_, ok = block.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok, "first stmt in the block is the for-loop initializer")

	while, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok, "second stmt in the block is the desugared while loop")
	_, ok = while.Cond.(*ast.Binary)
	assert.True(t, ok)

	body, ok := while.Body.(*ast.Block)
	require.True(t, ok, "while body wraps the original body plus the post expression")
	assert.Len(t, body.Stmts, 2)
}

func TestParseForWithoutClausesUsesFalseLiteral(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte("for (;;) print 1;"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	while, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	lit, ok := while.Cond.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, false, lit.Val)
}

func TestParseClassWithSuperclassAndInit(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte(`
		class Brunch < Breakfast {
			init(meat, bread, drink) {
				super.init(meat, bread);
				this.drink = drink;
			}
		}
	`))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	cls, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "Brunch", cls.Name)
	require.NotNil(t, cls.Superclass)
	assert.Equal(t, "Breakfast", cls.Superclass.Name)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "init", cls.Methods[0].Name)
	assert.True(t, cls.Methods[0].IsInitializer)
}

func TestParseAssignmentTargets(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte(`
		a = 1;
		obj.field = 2;
	`))
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	_, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	assert.True(t, ok)
	_, ok = stmts[1].(*ast.ExprStmt).Expr.(*ast.Set)
	assert.True(t, ok)
}

func TestParseInvalidAssignmentTargetIsAnErrorNotAPanic(t *testing.T) {
	stmts, err := parser.Parse("test.lox", []byte("1 + 2 = 3;"))
	require.Error(t, err)
	// parsing continues past the error rather than aborting the whole file.
	assert.NotNil(t, stmts)
}

func TestParseReportsMultipleErrorsViaSynchronize(t *testing.T) {
	_, err := parser.Parse("test.lox", []byte(`
		var = 1;
		var ok = 2;
		if (true 3;
	`))
	require.Error(t, err)
	// scanner.ErrorList aliases go/scanner.ErrorList: synchronize lets parsing
	// keep going past the first failure, so more than one error accumulates.
	el, ok := err.(scanner.ErrorList)
	require.True(t, ok)
	assert.Greater(t, len(el), 1)
}

func TestParseFunctionParameterLimit(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "a" + string(rune('A'+i%26))
	}
	src += ") {}"

	_, err := parser.Parse("test.lox", []byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 parameters.")
}
