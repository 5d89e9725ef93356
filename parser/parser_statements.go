package parser

import "github.com/akashmaji946/lox-mix/lexer"

// declaration is the top of the statement grammar: a var/fun/class
// declaration, or any other statement.
func (p *Parser) declaration() Stmt {
	switch {
	case p.match(lexer.Class):
		return p.classDeclaration()
	case p.match(lexer.Fun):
		return p.function("function")
	case p.match(lexer.Var):
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() Stmt {
	name := p.consume(lexer.Identifier, "Expect variable name.")
	var init Expr
	if p.match(lexer.Equal) {
		init = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	return &VarStmt{Name: name, Initializer: init}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.Break):
		return p.breakStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.LeftBrace):
		return &BlockStmt{Statements: p.block()}
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() Stmt {
	value := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after value.")
	return &PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(lexer.Semicolon) {
		value = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after return value.")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

// breakStatement requires an enclosing loop; the parser tracks
// loopDepth across while/for bodies so it can report this statically
// instead of only at runtime.
func (p *Parser) breakStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.raise(keyword, "'break' outside of a loop.")
	}
	p.consume(lexer.Semicolon, "Expect ';' after 'break'.")
	return &BreakStmt{Keyword: keyword}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &WhileStmt{Condition: cond, Body: body}
}

// forStatement desugars the C-style for loop into an equivalent block
// built from VarStmt/WhileStmt/ExpressionStmt — the resolver and
// interpreter never see a "for" node.
func (p *Parser) forStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'for'.")

	var initializer Stmt
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.match(lexer.Var):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition Expr
	if !p.check(lexer.Semicolon) {
		condition = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after loop condition.")

	var increment Expr
	if !p.check(lexer.RightParen) {
		increment = p.expression()
	}
	p.consume(lexer.RightParen, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if increment != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &Literal{exprBase: exprBase{p.newNodeID()}, Value: true}
	}
	body = &WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &BlockStmt{Statements: []Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) ifStatement() Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(lexer.Else) {
		elseBranch = p.statement()
	}
	return &IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after expression.")
	return &ExpressionStmt{Expression: expr}
}

func (p *Parser) block() []Stmt {
	var stmts []Stmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		if s := p.declarationRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(lexer.RightBrace, "Expect '}' after block.")
	return stmts
}

// function parses both top-level `fun` declarations and class method
// bodies (kind is "function" or "method", used only in error messages).
func (p *Parser) function(kind string) *FunctionStmt {
	name := p.consume(lexer.Identifier, "Expect "+kind+" name.")
	p.consume(lexer.LeftParen, "Expect '(' after "+kind+" name.")

	var params []lexer.Token
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.raise(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(lexer.Identifier, "Expect parameter name."))
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expect ')' after parameters.")
	p.consume(lexer.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &FunctionStmt{Name: name, Params: params, Body: body}
}
