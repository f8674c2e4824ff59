package interpreter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/lox/lang/interpreter"
)

func TestTruthy(t *testing.T) {
	assert.False(t, interpreter.Truthy(interpreter.NilValue))
	assert.False(t, interpreter.Truthy(interpreter.Bool(false)))
	assert.True(t, interpreter.Truthy(interpreter.Bool(true)))
	assert.True(t, interpreter.Truthy(interpreter.Number(0)))
	assert.True(t, interpreter.Truthy(interpreter.String("")))
}

func TestEqual(t *testing.T) {
	assert.True(t, interpreter.Equal(interpreter.NilValue, interpreter.NilValue))
	assert.False(t, interpreter.Equal(interpreter.NilValue, interpreter.Bool(false)))
	assert.True(t, interpreter.Equal(interpreter.Number(1), interpreter.Number(1)))
	assert.False(t, interpreter.Equal(interpreter.Number(1), interpreter.String("1")))
	assert.True(t, interpreter.Equal(interpreter.String("a"), interpreter.String("a")))
	assert.False(t, interpreter.Equal(interpreter.String("a"), interpreter.String("b")))
	nan := interpreter.Number(math.NaN())
	assert.False(t, interpreter.Equal(nan, nan), "NaN follows IEEE-754: it is not equal to itself")
}

func TestNumberStringDropsIntegralFraction(t *testing.T) {
	assert.Equal(t, "3", interpreter.Number(3).String())
	assert.Equal(t, "3", interpreter.Number(3.0).String())
	assert.Equal(t, "-7", interpreter.Number(-7).String())
	assert.Equal(t, "3.25", interpreter.Number(3.25).String())
	assert.Equal(t, "0", interpreter.Number(0).String())
}

func TestValueStringification(t *testing.T) {
	assert.Equal(t, "nil", interpreter.NilValue.String())
	assert.Equal(t, "true", interpreter.Bool(true).String())
	assert.Equal(t, "false", interpreter.Bool(false).String())
	assert.Equal(t, "hello", interpreter.String("hello").String())
}
