package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// expression parses the full precedence chain, starting at assignment (the
// lowest-precedence, right-associative production).
func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses "target = value" (right-associative) or falls through
// to logicOr. The target is validated after the fact: any expression can be
// parsed on the left of "=", but only *ast.Variable and *ast.Get are valid
// assignment targets, matching spec.md §4.2's "parse then validate" approach
// (it never needs lookahead to decide whether it is parsing an assignment).
func (p *parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.tok == token.EQ {
		eq := p.val.Pos
		p.advance()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{ExprID: ast.NewExprID(), NamePos: target.NamePos, Name: target.Name, Eq: eq, Value: value}
		case *ast.Get:
			return &ast.Set{
				ExprID:  ast.NewExprID(),
				Object:  target.Object,
				Dot:     target.Dot,
				Name:    target.Name,
				NamePos: target.NamePos,
				Eq:      eq,
				Value:   value,
			}
		default:
			p.errorAtPos(eq, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.tok == token.OR {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.logicAnd()
		expr = &ast.Logical{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.tok == token.AND {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.equality()
		expr = &ast.Logical{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.tok == token.BANGEQ || p.tok == token.EQEQ {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.comparison()
		expr = &ast.Binary{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.tok == token.GT || p.tok == token.GTEQ || p.tok == token.LT || p.tok == token.LTEQ {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.term()
		expr = &ast.Binary{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.tok == token.MINUS || p.tok == token.PLUS {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.factor()
		expr = &ast.Binary{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.tok == token.SLASH || p.tok == token.STAR {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.unary()
		expr = &ast.Binary{ExprID: ast.NewExprID(), Left: expr, OpPos: opPos, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.tok == token.BANG || p.tok == token.MINUS {
		op, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.unary()
		return &ast.Unary{ExprID: ast.NewExprID(), OpPos: opPos, Op: op, Right: right}
	}
	return p.call()
}

// call parses a primary expression followed by any number of "(args)" and
// ".name" suffixes.
func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch p.tok {
		case token.LPAREN:
			lparen := p.val.Pos
			p.advance()
			var args []ast.Expr
			if p.tok != token.RPAREN {
				for {
					if len(args) >= 255 {
						p.errorAtCurrent("Can't have more than 255 arguments.")
					}
					args = append(args, p.expression())
					if !p.match(token.COMMA) {
						break
					}
				}
			}
			rparen := p.expect(token.RPAREN).Pos
			expr = &ast.Call{ExprID: ast.NewExprID(), Callee: expr, Lparen: lparen, Args: args, Rparen: rparen}
		case token.DOT:
			dot := p.val.Pos
			p.advance()
			name := p.expect(token.IDENT)
			expr = &ast.Get{ExprID: ast.NewExprID(), Object: expr, Dot: dot, Name: name.Raw, NamePos: name.Pos}
		default:
			return expr
		}
	}
}

func (p *parser) primary() ast.Expr {
	switch p.tok {
	case token.FALSE:
		pos := p.val.Pos
		p.advance()
		return &ast.Literal{ExprID: ast.NewExprID(), Pos: pos, Val: false}
	case token.TRUE:
		pos := p.val.Pos
		p.advance()
		return &ast.Literal{ExprID: ast.NewExprID(), Pos: pos, Val: true}
	case token.NIL:
		pos := p.val.Pos
		p.advance()
		return &ast.Literal{ExprID: ast.NewExprID(), Pos: pos, Val: nil}
	case token.NUMBER:
		v := p.val
		p.advance()
		return &ast.Literal{ExprID: ast.NewExprID(), Pos: v.Pos, Val: v.Number}
	case token.STRING:
		v := p.val
		p.advance()
		return &ast.Literal{ExprID: ast.NewExprID(), Pos: v.Pos, Val: v.String}
	case token.THIS:
		pos := p.val.Pos
		p.advance()
		return &ast.This{ExprID: ast.NewExprID(), Pos: pos}
	case token.SUPER:
		pos := p.val.Pos
		p.advance()
		p.expect(token.DOT)
		method := p.expect(token.IDENT)
		return &ast.Super{ExprID: ast.NewExprID(), Pos: pos, Method: method.Raw, MethodPos: method.Pos}
	case token.IDENT:
		v := p.val
		p.advance()
		return &ast.Variable{ExprID: ast.NewExprID(), NamePos: v.Pos, Name: v.Raw}
	case token.LPAREN:
		lparen := p.val.Pos
		p.advance()
		e := p.expression()
		p.expect(token.RPAREN)
		return &ast.Grouping{ExprID: ast.NewExprID(), Lparen: lparen, Expr: e}
	}

	p.errorAtCurrent("Expect expression.")
	panic(errPanicMode)
}
