package parser

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/hashicorp/go-multierror"
)

// ParseError reports one syntax error at a specific token. The parser
// never stops at the first one: it recovers via synchronize and keeps
// going so a single run can report every syntax error in a file, then
// aggregates them with *multierror.Error (replacing go-mix's []string
// error slices with a typed, itemized error value).
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line(), e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line(), e.Token.Lexeme, e.Message)
}

// panicError is the sentinel thrown internally to unwind to the nearest
// synchronize point; it always wraps a *ParseError already recorded in
// p.errors.
type panicError struct{ err *ParseError }

// Parser consumes a flat token slice (the lexer already ran to
// completion) and produces a statement tree via recursive descent with
// precedence climbing for expressions.
type Parser struct {
	tokens     []lexer.Token
	current    int
	nextNodeID int
	loopDepth  int
	errors     *multierror.Error
}

// New creates a Parser over a complete token stream (must end in EOF).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser to completion, returning every top-level
// statement it could recover and a non-nil error iff any syntax error
// was recorded.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		if s := p.declarationRecover(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if p.errors != nil {
		return stmts, p.errors.ErrorOrNil()
	}
	return stmts, nil
}

// declarationRecover runs declaration() and, on a parse error, unwinds
// to the next statement boundary (panic-mode recovery) instead of
// aborting the whole parse.
func (p *Parser) declarationRecover() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(panicError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) newNodeID() int {
	p.nextNodeID++
	return p.nextNodeID
}

// --- token cursor helpers ---

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *Parser) previous() lexer.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return kind == lexer.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected kind or raises a parse error.
func (p *Parser) consume(kind lexer.Kind, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.raise(p.peek(), message))
}

// raise records a ParseError against p.errors and returns a panicError
// for the caller to `panic(...)`, unwinding to declarationRecover.
func (p *Parser) raise(tok lexer.Token, message string) panicError {
	perr := &ParseError{Token: tok, Message: message}
	p.errors = multierror.Append(p.errors, perr)
	return panicError{perr}
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so one syntax error doesn't cascade into spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == lexer.Semicolon {
			return
		}
		switch p.peek().Kind {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For,
			lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}
		p.advance()
	}
}
