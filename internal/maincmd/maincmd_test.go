package maincmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/mainer"
)

func runCmd(t *testing.T, args []string, stdin string) (stdout, stderr string, code mainer.ExitCode) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdout: &outBuf,
		Stderr: &errBuf,
		Stdin:  bytes.NewBufferString(stdin),
	}
	c := &Cmd{}
	// Main expects the program name first, as with os.Args in cmd/lox.
	code = c.Main(append([]string{binName}, args...), stdio)
	return outBuf.String(), errBuf.String(), code
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestMainRunsScriptSuccessfully(t *testing.T) {
	path := writeScript(t, `print "hello";`)
	out, _, code := runCmd(t, []string{path}, "")
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "hello\n", out)
}

func TestMainReportsStaticErrorWithExit65(t *testing.T) {
	path := writeScript(t, `print ;`)
	_, errOut, code := runCmd(t, []string{path}, "")
	assert.Equal(t, exitDataErr, code)
	assert.Contains(t, errOut, "Error")
}

func TestMainReportsRuntimeErrorWithExit70(t *testing.T) {
	path := writeScript(t, `print nope;`)
	_, errOut, code := runCmd(t, []string{path}, "")
	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, errOut, "Undefined variable 'nope'.")
}

func TestMainReportsUsageErrorWithExit64(t *testing.T) {
	_, errOut, code := runCmd(t, []string{"a", "b"}, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "usage:")
}

func TestMainREPLAutoPrintsBareExpression(t *testing.T) {
	out, _, code := runCmd(t, nil, "1 + 2\n")
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, "3\n")
}

func TestReplParseRewritesBareExpressionToPrint(t *testing.T) {
	stmts, err := replParse("1 + 2")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	assert.True(t, ok, "a bare expression typed at the REPL is auto-printed")
}

func TestReplParseLeavesAssignmentAlone(t *testing.T) {
	stmts, err := replParse("a = 1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.ExprStmt)
	assert.True(t, ok, "an assignment is not auto-printed")
}
