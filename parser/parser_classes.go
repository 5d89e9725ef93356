package parser

import "github.com/akashmaji946/lox-mix/lexer"

// classDeclaration parses `class Name [< Super] { methods... }`.
func (p *Parser) classDeclaration() Stmt {
	name := p.consume(lexer.Identifier, "Expect class name.")

	var superclass *Variable
	if p.match(lexer.Less) {
		superName := p.consume(lexer.Identifier, "Expect superclass name.")
		superclass = &Variable{exprBase: exprBase{p.newNodeID()}, Name: superName}
	}

	p.consume(lexer.LeftBrace, "Expect '{' before class body.")
	var methods []*FunctionStmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(lexer.RightBrace, "Expect '}' after class body.")

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}
