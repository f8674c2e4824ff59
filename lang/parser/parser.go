// Package parser implements the recursive-descent parser that turns a token
// stream into the statement list lang/resolver and lang/interpreter consume.
package parser

import (
	"errors"
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// Parse parses the named source and returns its top-level statement list.
// The returned error, if non-nil, is a scanner.ErrorList; parsing continues
// past an error by synchronizing at the next statement boundary, so a single
// Parse call can report more than one error, in the style of spec.md §4.2.
func Parse(filename string, src []byte) ([]ast.Stmt, error) {
	var p parser
	p.init(filename, src)
	stmts := p.parseProgram()
	p.errors.Sort()
	return stmts, p.errors.Err()
}

// errPanicMode is panicked by expect (and a few other hard-failure points) to
// unwind to the nearest statement boundary, where it is recovered and
// synchronization resumes scanning at the next likely statement start.
var errPanicMode = errors.New("parser: panic mode")

type parser struct {
	filename string
	scan     scanner.Scanner
	errors   scanner.ErrorList

	tok token.Token
	val token.Value
}

func (p *parser) init(filename string, src []byte) {
	p.filename = filename
	p.scan.Init(filename, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scan.Scan(&p.val)
}

func (p *parser) check(tok token.Token) bool { return p.tok == tok }

// match consumes the current token and returns true if it is one of toks.
func (p *parser) match(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok == t {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it is tok, otherwise it records an
// error and panics with errPanicMode.
func (p *parser) expect(tok token.Token) token.Value {
	if p.tok != tok {
		p.errorAtCurrent(fmt.Sprintf("Expect %s.", tok.GoString()))
		panic(errPanicMode)
	}
	v := p.val
	p.advance()
	return v
}

// errorAtCurrent records msg located at the current token, using spec.md
// §6's "at end"/"at 'lexeme'" location phrasing.
func (p *parser) errorAtCurrent(msg string) {
	p.errorAt(p.val.Pos, p.tok, p.val, msg)
}

func (p *parser) errorAt(pos token.Pos, tok token.Token, val token.Value, msg string) {
	var loc string
	switch tok {
	case token.EOF:
		loc = " at end"
	default:
		loc = fmt.Sprintf(" at '%s'", val.Raw)
	}
	p.errors.Add(scanner.Position(p.filename, int(pos)), "Error"+loc+": "+msg)
}

func (p *parser) errorAtPos(pos token.Pos, msg string) {
	p.errors.Add(scanner.Position(p.filename, int(pos)), "Error: "+msg)
}

// synchronize discards tokens until it reaches a likely statement boundary,
// after a panic-mode error, so that a single Parse call can surface more
// than one independent error.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			p.advance()
			return
		}
		switch p.tok {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// declaration parses a declaration (class/fun/var) or falls through to
// statement, recovering from a panic-mode error by synchronizing.
func (p *parser) declaration() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function()
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) classDeclaration() ast.Stmt {
	name := p.expect(token.IDENT)
	pos := name.Pos

	var super *ast.Variable
	if p.match(token.LT) {
		superName := p.expect(token.IDENT)
		super = &ast.Variable{ExprID: ast.NewExprID(), NamePos: superName.Pos, Name: superName.Raw}
	}

	p.expect(token.LBRACE)
	var methods []*ast.FunStmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		fn := p.function().(*ast.FunStmt)
		fn.IsInitializer = fn.Name == "init"
		methods = append(methods, fn)
	}
	p.expect(token.RBRACE)

	return &ast.ClassStmt{Pos: pos, Name: name.Raw, Superclass: super, Methods: methods}
}

func (p *parser) function() ast.Stmt {
	name := p.expect(token.IDENT)
	pos := name.Pos
	p.expect(token.LPAREN)

	var params []string
	if p.tok != token.RPAREN {
		for {
			if len(params) >= 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			params = append(params, p.expect(token.IDENT).Raw)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	body := p.blockStmts()

	return &ast.FunStmt{Pos: pos, Name: name.Raw, Params: params, Body: body}
}

func (p *parser) varDeclaration() ast.Stmt {
	pos := p.val.Pos
	name := p.expect(token.IDENT)
	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.expect(token.SEMICOLON)
	return &ast.VarStmt{Pos: pos, Name: name.Raw, Init: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LBRACE):
		lbrace := p.val.Pos
		stmts := p.blockStmts()
		return &ast.Block{Lbrace: lbrace, Stmts: stmts}
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

// blockStmts parses statements until a closing '}', which it consumes.
func (p *parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE)
	return stmts
}

func (p *parser) printStatement() ast.Stmt {
	pos := p.val.Pos
	v := p.expression()
	p.expect(token.SEMICOLON)
	return &ast.PrintStmt{Pos: pos, Expr: v}
}

func (p *parser) ifStatement() ast.Stmt {
	pos := p.val.Pos
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)
	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Pos: pos, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStatement() ast.Stmt {
	pos := p.val.Pos
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)
	body := p.statement()
	return &ast.WhileStmt{Pos: pos, Cond: cond, Body: body}
}

// forStatement desugars "for (init; cond; post) body" into the equivalent
// while loop, per spec.md §4.2: there is no ast.ForStmt. The loop is wrapped
// in a block together with init only when init is present, and post is
// appended to the body in a block only when post is present.
func (p *parser) forStatement() ast.Stmt {
	pos := p.val.Pos
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if p.tok != token.SEMICOLON {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON)

	var post ast.Expr
	if p.tok != token.RPAREN {
		post = p.expression()
	}
	p.expect(token.RPAREN)

	body := p.statement()

	if post != nil {
		body = &ast.Block{Lbrace: pos, Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: post}}}
	}
	if cond == nil {
		cond = &ast.Literal{ExprID: ast.NewExprID(), Pos: pos, Val: false}
	}
	body = &ast.WhileStmt{Pos: pos, Cond: cond, Body: body}
	if init != nil {
		body = &ast.Block{Lbrace: pos, Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) returnStatement() ast.Stmt {
	pos := p.val.Pos
	var v ast.Expr
	if p.tok != token.SEMICOLON {
		v = p.expression()
	}
	p.expect(token.SEMICOLON)
	return &ast.ReturnStmt{Pos: pos, Value: v}
}

func (p *parser) expressionStatement() ast.Stmt {
	e := p.expression()
	p.expect(token.SEMICOLON)
	return &ast.ExprStmt{Expr: e}
}
