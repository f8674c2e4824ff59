package interpreter_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"testing"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/lang/interpreter"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
)

var updateTests = flag.Bool("test.update-interpreter-tests", false, "update the interpreter golden files")

// TestGolden runs every .lox file in testdata/in through the full
// scan/parse/resolve/interpret pipeline and diffs its stdout against the
// matching testdata/out/<name>.want golden file, in the style of spec.md
// §8's end-to-end scenarios.
func TestGolden(t *testing.T) {
	for _, fi := range filetest.SourceFiles(t, "testdata/in", ".lox") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile("testdata/in/" + fi.Name())
			if err != nil {
				t.Fatal(err)
			}

			stmts, err := parser.Parse(fi.Name(), src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			locals, err := resolver.Resolve(fi.Name(), stmts)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}

			var out bytes.Buffer
			in := interpreter.New()
			in.Stdout = &out
			if err := in.Run(context.Background(), locals, stmts); err != nil {
				t.Fatalf("run: %v", err)
			}

			filetest.DiffOutput(t, fi, out.String(), "testdata/out", updateTests)
		})
	}
}
