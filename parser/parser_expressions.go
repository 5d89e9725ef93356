package parser

import "github.com/akashmaji946/lox-mix/lexer"

// maxArgs is the ceiling on both call arguments and function params
// (spec: "more than 255 arguments/parameters is a parse error").
const maxArgs = 255

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses `target = value`, validating after the fact that
// target is a legal assignment target (Variable or Get) rather than
// building that restriction into the grammar itself — this lets the
// parser report "invalid assignment target" instead of a generic
// syntax error, matching the single right-associative "=" production.
func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(lexer.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{exprBase: exprBase{p.newNodeID()}, Name: target.Name, Value: value}
		case *Get:
			return &Set{exprBase: exprBase{p.newNodeID()}, Object: target.Object, Name: target.Name, Value: value}
		default:
			panic(p.raise(equals, "Invalid assignment target."))
		}
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(lexer.Or) {
		op := p.previous()
		right := p.and()
		expr = &Logical{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(lexer.And) {
		op := p.previous()
		right := p.equality()
		expr = &Logical{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &Binary{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &Binary{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(lexer.Minus, lexer.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &Binary{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(lexer.Slash, lexer.Star) {
		op := p.previous()
		right := p.unary()
		expr = &Binary{exprBase: exprBase{p.newNodeID()}, Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right := p.unary()
		return &Unary{exprBase: exprBase{p.newNodeID()}, Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "Expect property name after '.'.")
			expr = &Get{exprBase: exprBase{p.newNodeID()}, Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.raise(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	return &Call{exprBase: exprBase{p.newNodeID()}, Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(lexer.False):
		return &Literal{exprBase: exprBase{p.newNodeID()}, Value: false}
	case p.match(lexer.True):
		return &Literal{exprBase: exprBase{p.newNodeID()}, Value: true}
	case p.match(lexer.Nil):
		return &Literal{exprBase: exprBase{p.newNodeID()}, Value: nil}
	case p.match(lexer.Number):
		return &Literal{exprBase: exprBase{p.newNodeID()}, Value: p.previous().Number}
	case p.match(lexer.String):
		return &Literal{exprBase: exprBase{p.newNodeID()}, Value: unquote(p.previous().Lexeme)}
	case p.match(lexer.Super):
		keyword := p.previous()
		p.consume(lexer.Dot, "Expect '.' after 'super'.")
		method := p.consume(lexer.Identifier, "Expect superclass method name.")
		return &Super{exprBase: exprBase{p.newNodeID()}, Keyword: keyword, Method: method}
	case p.match(lexer.This):
		return &This{exprBase: exprBase{p.newNodeID()}, Keyword: p.previous()}
	case p.match(lexer.Identifier):
		return &Variable{exprBase: exprBase{p.newNodeID()}, Name: p.previous()}
	case p.match(lexer.LeftParen):
		expr := p.expression()
		p.consume(lexer.RightParen, "Expect ')' after expression.")
		return &Grouping{exprBase: exprBase{p.newNodeID()}, Inner: expr}
	}
	panic(p.raise(p.peek(), "Expect expression."))
}

// unquote strips the surrounding double quotes from a String token's
// lexeme. Escape processing is deliberately minimal: a backslash quotes
// the single character after it, which is kept while the backslash is
// dropped (so `\"` yields `"` and `\n` yields `n`).
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	inner := lexeme[1 : len(lexeme)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		out = append(out, inner[i])
	}
	return string(out)
}
