package bytecode

import "github.com/akashmaji946/lox-mix/lexer"

// precedence is the compiler's precedence ladder, lowest first; parsePrecedence
// parses any expression binding at least as tightly as the level passed in.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// parseFn compiles one grammar production starting at the just-consumed
// token; canAssign gates whether a trailing `=` is a valid assignment
// target at this precedence level.
type parseFn func(c *Compiler, canAssign bool)

// rule is one row of the Pratt table: how a token kind behaves in
// prefix position, in infix position, and at what precedence it binds
// as an infix operator.
type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[lexer.Kind]rule

func init() {
	rules = map[lexer.Kind]rule{
		lexer.LeftParen:  {(*Compiler).grouping, nil, precNone},
		lexer.Minus:      {(*Compiler).unary, (*Compiler).binary, precTerm},
		lexer.Plus:       {nil, (*Compiler).binary, precTerm},
		lexer.Slash:      {nil, (*Compiler).binary, precFactor},
		lexer.Star:       {nil, (*Compiler).binary, precFactor},
		lexer.Bang:       {(*Compiler).unary, nil, precNone},
		lexer.BangEqual:  {nil, (*Compiler).binary, precEquality},
		lexer.EqualEqual: {nil, (*Compiler).binary, precEquality},
		lexer.Greater:      {nil, (*Compiler).binary, precComparison},
		lexer.GreaterEqual: {nil, (*Compiler).binary, precComparison},
		lexer.Less:         {nil, (*Compiler).binary, precComparison},
		lexer.LessEqual:    {nil, (*Compiler).binary, precComparison},
		lexer.Identifier: {(*Compiler).variable, nil, precNone},
		lexer.String:     {(*Compiler).string_, nil, precNone},
		lexer.Number:     {(*Compiler).number, nil, precNone},
		lexer.And:        {nil, (*Compiler).and, precAnd},
		lexer.Or:         {nil, (*Compiler).or, precOr},
		lexer.False:      {(*Compiler).literal, nil, precNone},
		lexer.Nil:        {(*Compiler).literal, nil, precNone},
		lexer.True:       {(*Compiler).literal, nil, precNone},
	}
}

func getRule(kind lexer.Kind) rule {
	if r, ok := rules[kind]; ok {
		return r
	}
	return rule{}
}
