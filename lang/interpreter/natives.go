package interpreter

import (
	"math"
	"time"
)

// defineNatives registers the native functions available in every global
// environment. clock is required by spec.md §4.4 (used by the benchmark
// scenario in §8); getchar and int are supplemented from original_source's
// native table (see SPEC_FULL.md §10) since nothing in spec.md's Non-goals
// excludes them.
func defineNatives(globals *Environment) {
	globals.Define("clock", &Native{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})

	globals.Define("getchar", &Native{
		name:  "getchar",
		arity: 0,
		fn: func(in *Interpreter, _ []Value) (Value, error) {
			var buf [1]byte
			n, err := in.stdin().Read(buf[:])
			if n == 0 || err != nil {
				return Number(-1), nil
			}
			return Number(buf[0]), nil
		},
	})

	globals.Define("int", &Native{
		name:  "int",
		arity: 1,
		fn: func(_ *Interpreter, args []Value) (Value, error) {
			n, ok := args[0].(Number)
			if !ok {
				return nil, newRuntimeError(0, "Argument to 'int' must be a number.")
			}
			return Number(math.Trunc(float64(n))), nil
		},
	})
}
