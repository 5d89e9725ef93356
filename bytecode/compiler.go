// Compiler is a single-pass Pratt compiler: it scans tokens directly
// (no intermediate AST — the tree-walking back end's parser package is
// deliberately not reused here) and emits straight into a Chunk as it
// goes, following rami3l-golox's vm-parser.go/vm-compiler.go structure
// (Parser embedding a Scanner, byte-emission helpers, a loop-context
// stack for break) adapted to this module's lexer and value
// types, with local-slot and jump/loop bookkeeping rewritten to be
// correct under nested loops (see loopContext below).
package bytecode

import (
	"math"

	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/hashicorp/go-multierror"
)

const maxLocals = math.MaxUint8 + 1

// uninitialized marks a local whose declaration has been parsed but
// whose initializer has not yet run — reading it in its own
// initializer is a compile error, same rule as the resolver's.
const uninitialized = -1

type local struct {
	name  string
	depth int
}

// loopContext tracks one enclosing loop's backward-jump target and the
// list of not-yet-patched forward jumps its `break` statements emitted.
// Kept as an explicit stack (rather than rami3l-golox's single mutable
// field) so nested loops don't clobber each other's state.
type loopContext struct {
	start  int
	breaks []int
}

// Compiler turns Lox source directly into a Chunk. Construct with
// NewCompiler and call Compile once.
type Compiler struct {
	lex  *lexer.Lexer
	prev lexer.Token
	curr lexer.Token

	chunk      *Chunk
	locals     []local
	scopeDepth int
	loops      []*loopContext

	errors    *multierror.Error
	panicMode bool
}

// NewCompiler returns a Compiler ready to compile src.
func NewCompiler(src string) *Compiler {
	return &Compiler{lex: lexer.New(src), chunk: NewChunk()}
}

// Compile runs the whole compiler over the source given to NewCompiler
// and returns the finished Chunk, or an aggregated *multierror.Error of
// every static fault found (the compiler does not stop at the first
// one — it synchronizes and keeps going, same as the tree-walking
// parser).
func Compile(src string) (*Chunk, error) {
	c := NewCompiler(src)
	c.advance()
	for !c.match(lexer.EOF) {
		c.declaration()
	}
	c.emitReturn()
	return c.chunk, c.errors.ErrorOrNil()
}

/* Token cursor */

func (c *Compiler) advance() {
	c.prev = c.curr
	for {
		c.curr = c.lex.NextToken()
		if c.curr.Kind != lexer.Invalid {
			break
		}
		c.errorAtCurrent(c.curr.Lexeme)
	}
}

func (c *Compiler) check(kind lexer.Kind) bool { return c.curr.Kind == kind }

func (c *Compiler) match(kind lexer.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind lexer.Kind, message string) {
	if c.check(kind) {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

/* Byte emission */

func (c *Compiler) emitByte(b byte) { c.chunk.Write(b, c.prev.Line()) }

func (c *Compiler) emitOp(op OpCode) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op OpCode, arg byte) {
	c.emitByte(byte(op))
	c.emitByte(arg)
}

func (c *Compiler) emitReturn() { c.emitOp(OpReturn) }

func (c *Compiler) emitConstant(val objects.Value) {
	idx, err := c.chunk.AddConstant(val)
	if err != nil {
		c.error(err.Error())
		return
	}
	c.emitOpByte(OpConstant, idx)
}

// emitJump emits a two-operand-byte placeholder jump and returns the
// offset of its first operand byte, to be filled in later by patchJump.
func (c *Compiler) emitJump(op OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk.Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk.Code) - (offset + 2)
	if jump > math.MaxUint16 {
		c.error("too much code to jump over")
		return
	}
	c.chunk.Code[offset] = byte(jump >> 8 & 0xff)
	c.chunk.Code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) emitLoop(start int) {
	c.emitOp(OpLoop)
	backJump := len(c.chunk.Code) + 2 - start
	if backJump > math.MaxUint16 {
		c.error("loop body too large")
		return
	}
	c.emitByte(byte(backJump >> 8 & 0xff))
	c.emitByte(byte(backJump & 0xff))
}

/* Declarations and statements */

func (c *Compiler) declaration() {
	switch {
	case c.match(lexer.Var):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	if c.match(lexer.Equal) {
		c.expression()
	} else {
		c.emitOp(OpNil)
	}
	c.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

// parseVariable consumes an identifier and, for a global, interns its
// name as a constant; for a local it just registers the slot and
// returns 0 (defineVariable ignores the argument for locals).
func (c *Compiler) parseVariable(message string) byte {
	c.consume(lexer.Identifier, message)
	name := c.prev
	c.declareLocal(name)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name)
}

func (c *Compiler) identifierConstant(name lexer.Token) byte {
	idx, err := c.chunk.AddConstant(objects.String(name.Lexeme))
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return idx
}

func (c *Compiler) declareLocal(name lexer.Token) {
	if c.scopeDepth == 0 {
		return
	}
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != uninitialized && l.depth < c.scopeDepth {
			break
		}
		if l.name == name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}
	if len(c.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, local{name: name.Lexeme, depth: uninitialized})
}

func (c *Compiler) defineVariable(global byte) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(OpDefineGlobal, global)
}

func (c *Compiler) markInitialized() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

func (c *Compiler) statement() {
	switch {
	case c.match(lexer.Print):
		c.printStatement()
	case c.match(lexer.If):
		c.ifStatement()
	case c.match(lexer.While):
		c.whileStatement()
	case c.match(lexer.For):
		c.forStatement()
	case c.match(lexer.Break):
		c.breakStatement()
	case c.match(lexer.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(lexer.Semicolon, "Expect ';' after value.")
	c.emitOp(OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.Semicolon, "Expect ';' after expression.")
	c.emitOp(OpPop)
}

func (c *Compiler) block() {
	for !c.check(lexer.RightBrace) && !c.check(lexer.EOF) {
		c.declaration()
	}
	c.consume(lexer.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

func (c *Compiler) endScope() {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOp(OpPop)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

func (c *Compiler) ifStatement() {
	c.consume(lexer.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(lexer.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.statement()

	elseJump := c.emitJump(OpJump)
	c.patchJump(thenJump)
	c.emitOp(OpPop)

	if c.match(lexer.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loop := &loopContext{start: len(c.chunk.Code)}
	c.loops = append(c.loops, loop)

	c.consume(lexer.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(lexer.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.statement()
	c.emitLoop(loop.start)

	c.patchJump(exitJump)
	c.emitOp(OpPop)
	c.endLoop()
}

func (c *Compiler) forStatement() {
	c.beginScope()

	c.consume(lexer.LeftParen, "Expect '(' after 'for'.")
	switch {
	case c.match(lexer.Semicolon):
		// No initializer.
	case c.match(lexer.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loop := &loopContext{start: len(c.chunk.Code)}
	c.loops = append(c.loops, loop)

	exitJump := -1
	if !c.match(lexer.Semicolon) {
		c.expression()
		c.consume(lexer.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(OpJumpIfFalse)
		c.emitOp(OpPop)
	}

	if !c.match(lexer.RightParen) {
		bodyJump := c.emitJump(OpJump)
		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emitOp(OpPop)
		c.consume(lexer.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loop.start)
		loop.start = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loop.start)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(OpPop)
	}
	c.endLoop()
	c.endScope()
}

func (c *Compiler) endLoop() {
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	for _, hole := range loop.breaks {
		c.patchJump(hole)
	}
}

func (c *Compiler) breakStatement() {
	if len(c.loops) == 0 {
		c.error("'break' outside of a loop.")
		return
	}
	c.consume(lexer.Semicolon, "Expect ';' after 'break'.")
	loop := c.loops[len(c.loops)-1]
	hole := c.emitJump(OpJump)
	loop.breaks = append(loop.breaks, hole)
}

/* Expressions */

func (c *Compiler) expression() { c.parsePrecedence(precAssignment) }

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefix := getRule(c.prev.Kind).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}
	canAssign := prec <= precAssignment
	prefix(c, canAssign)

	for prec <= getRule(c.curr.Kind).precedence {
		c.advance()
		infix := getRule(c.prev.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(lexer.Equal) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) number(_ bool) {
	c.emitConstant(objects.Number(c.prev.Number))
}

func (c *Compiler) string_(_ bool) {
	lexeme := c.prev.Lexeme
	c.emitConstant(objects.String(lexeme[1 : len(lexeme)-1]))
}

func (c *Compiler) literal(_ bool) {
	switch c.prev.Kind {
	case lexer.False:
		c.emitOp(OpFalse)
	case lexer.True:
		c.emitOp(OpTrue)
	case lexer.Nil:
		c.emitOp(OpNil)
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(lexer.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	op := c.prev.Kind
	c.parsePrecedence(precUnary)
	switch op {
	case lexer.Bang:
		c.emitOp(OpNot)
	case lexer.Minus:
		c.emitOp(OpNegate)
	}
}

func (c *Compiler) binary(_ bool) {
	op := c.prev.Kind
	r := getRule(op)
	c.parsePrecedence(r.precedence + 1)

	switch op {
	case lexer.BangEqual:
		c.emitOp(OpEqual)
		c.emitOp(OpNot)
	case lexer.EqualEqual:
		c.emitOp(OpEqual)
	case lexer.Greater:
		c.emitOp(OpGreater)
	case lexer.GreaterEqual:
		c.emitOp(OpLess)
		c.emitOp(OpNot)
	case lexer.Less:
		c.emitOp(OpLess)
	case lexer.LessEqual:
		c.emitOp(OpGreater)
		c.emitOp(OpNot)
	case lexer.Plus:
		c.emitOp(OpAdd)
	case lexer.Minus:
		c.emitOp(OpSubtract)
	case lexer.Star:
		c.emitOp(OpMultiply)
	case lexer.Slash:
		c.emitOp(OpDivide)
	}
}

func (c *Compiler) and(_ bool) {
	endJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(OpJumpIfFalse)
	endJump := c.emitJump(OpJump)
	c.patchJump(elseJump)
	c.emitOp(OpPop)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev, canAssign)
}

func (c *Compiler) namedVariable(name lexer.Token, canAssign bool) {
	slot, isLocal := c.resolveLocal(name)

	var getOp, setOp OpCode
	var arg byte
	if isLocal {
		getOp, setOp, arg = OpGetLocal, OpSetLocal, byte(slot)
	} else {
		getOp, setOp, arg = OpGetGlobal, OpSetGlobal, c.identifierConstant(name)
	}

	if canAssign && c.match(lexer.Equal) {
		c.expression()
		c.emitOpByte(setOp, arg)
		return
	}
	c.emitOpByte(getOp, arg)
}

// resolveLocal finds name in the innermost-to-outermost local stack,
// reporting "read in its own initializer" if the match is declared but
// not yet initialized. ok is false for a global.
func (c *Compiler) resolveLocal(name lexer.Token) (slot int, ok bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.name != name.Lexeme {
			continue
		}
		if l.depth == uninitialized {
			c.error("Can't read local variable in its own initializer.")
		}
		return i, true
	}
	return 0, false
}

/* Error handling */

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.curr, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.prev, message) }

func (c *Compiler) errorAt(tok lexer.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errors = multierror.Append(c.errors, &CompileError{Line: tok.Line(), Message: message})
}

// synchronize skips tokens until it finds a likely statement boundary,
// same recovery point set as the tree-walking parser's.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.curr.Kind != lexer.EOF {
		if c.prev.Kind == lexer.Semicolon {
			return
		}
		switch c.curr.Kind {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For,
			lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}
		c.advance()
	}
}
