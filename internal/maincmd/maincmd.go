// Package maincmd implements the command-line driver of spec.md §6: given
// zero, one, or more than one positional argument it starts a REPL, runs a
// script file, or reports a usage error, respectively.
package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/interpreter"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

const binName = "lox"

// Exit codes, fixed by spec.md §6: 0 on success, 65 for a static
// (scan/parse/resolve) error, 70 for a runtime error, 64 for a CLI usage
// error (a fourth code the original Lox driver also uses, not named by
// spec.md but present in original_source/ and kept for a reader's familiar
// "wrong number of arguments" behavior).
const (
	exitUsage   mainer.ExitCode = 64
	exitDataErr mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
)

var shortUsage = fmt.Sprintf("usage: %s [script]\n", binName)

// Cmd is the top-level command, parsed and run by mainer.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}
func (c *Cmd) Validate() error {
	if len(c.args) > 1 {
		return fmt.Errorf("usage: %s [script]", binName)
	}
	return nil
}

// Main is the mainer.Cmder entry point: it dispatches to the REPL or to
// running a single script file, and maps any error to the exit code
// spec.md §6 requires.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, shortUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch len(c.args) {
	case 0:
		return runREPL(ctx, stdio)
	case 1:
		return runFile(ctx, stdio, c.args[0])
	default:
		fmt.Fprint(stdio.Stderr, shortUsage)
		return exitUsage
	}
}

// runFile scans, parses, resolves and interprets a single source file, per
// the pipeline of spec.md §2.
func runFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return exitDataErr
	}

	stmts, err := parser.Parse(path, src)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return exitDataErr
	}

	locals, err := resolver.Resolve(path, stmts)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return exitDataErr
	}

	in := interpreter.New()
	in.Stdout, in.Stderr, in.Stdin = stdio.Stdout, stdio.Stderr, stdio.Stdin
	if err := in.Run(ctx, locals, stmts); err != nil {
		printRuntimeError(stdio.Stderr, err)
		return exitRuntime
	}
	return mainer.Success
}

// runREPL reads one line at a time, feeding each through the full pipeline
// against a single persistent interpreter (and thus a single persistent
// global environment), per spec.md §6. A line that fails to parse or
// resolve reports its error and moves on to the next line rather than
// exiting, the usual REPL behavior.
func runREPL(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	in := interpreter.New()
	in.Stdout, in.Stderr, in.Stdin = stdio.Stdout, stdio.Stderr, stdio.Stdin

	sc := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return mainer.Success
		}
		line := sc.Text()
		if line == "" {
			continue
		}

		stmts, err := replParse(line)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}

		locals, err := resolver.Resolve("<stdin>", stmts)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}

		if err := in.Run(ctx, locals, stmts); err != nil {
			printRuntimeError(stdio.Stderr, err)
		}
	}
}

// replParse parses one REPL line. A bare expression (with or without a
// trailing semicolon) is auto-printed by wrapping it in a PrintStmt, unless
// it is an assignment or call, matching glox's VisitExprStmt/isREPL
// convenience (see SPEC_FULL.md §10) rather than requiring the user to type
// "print" for every line.
func replParse(line string) ([]ast.Stmt, error) {
	src := line
	if !strings.HasSuffix(strings.TrimSpace(src), ";") && !strings.HasSuffix(strings.TrimSpace(src), "}") {
		src += ";"
	}

	stmts, err := parser.Parse("<stdin>", []byte(src))
	if err != nil || len(stmts) != 1 {
		return stmts, err
	}

	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		return stmts, nil
	}
	switch exprStmt.Expr.(type) {
	case *ast.Assign, *ast.Set, *ast.Call:
		return stmts, nil
	default:
		return []ast.Stmt{&ast.PrintStmt{Pos: exprStmt.Expr.Span(), Expr: exprStmt.Expr}}, nil
	}
}

// printRuntimeError formats a runtime error per spec.md §6:
// "<message>\n[line N]". A non-*interpreter.RuntimeError (e.g. context
// cancellation) is printed as-is.
func printRuntimeError(w io.Writer, err error) {
	if rerr, ok := err.(*interpreter.RuntimeError); ok {
		fmt.Fprintf(w, "%s\n[line %d]\n", rerr.Message, rerr.Line)
		return
	}
	fmt.Fprintf(w, "%s\n", err)
}
