package lexer

import (
	"strconv"

	"github.com/josharian/intern"
)

// Lexer scans Lox source code one byte at a time, tracking the current
// position so it can hand tokens out lazily via NextToken or eagerly
// via Tokens. Its shape (source/current-byte/position fields,
// advance/peek helpers) follows go-mix's lexer.Lexer; it keeps no
// line/column fields, since a Token computes those on demand.
type Lexer struct {
	src       *Source
	current   byte
	position  int
	srcLength int
	nextID    int
}

// New creates a Lexer over the given source text.
func New(text string) *Lexer {
	src := NewSource(text)
	lex := &Lexer{src: src, srcLength: len(text)}
	if len(text) > 0 {
		lex.current = text[0]
	}
	return lex
}

// Tokens scans the entire source and returns every token, including
// Invalid ones, ending with the EOF token — the parser consumes this
// flat slice; the bytecode compiler instead pulls tokens one at a time
// via NextToken.
func (l *Lexer) Tokens() []Token {
	toks := make([]Token, 0, l.srcLength/4+1)
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			toks = append(toks, tok)
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func (l *Lexer) peek() byte {
	if l.position+1 >= l.srcLength {
		return 0
	}
	return l.src.Text[l.position+1]
}

func (l *Lexer) advance() {
	l.position++
	if l.position >= l.srcLength {
		l.current = 0
		l.position = l.srcLength
	} else {
		l.current = l.src.Text[l.position]
	}
}

func (l *Lexer) makeToken(kind Kind, start, length int) Token {
	l.nextID++
	lexeme := l.src.Text[start : start+length]
	switch kind {
	case Identifier, String:
		lexeme = intern.String(lexeme)
	}
	return Token{Kind: kind, Lexeme: lexeme, Src: l.src, Offset: start, Length: length, ID: l.nextID}
}

// NextToken scans and returns the next meaningful token, skipping any
// leading whitespace and comments. Returns an EOF token forever once
// the source is exhausted.
func (l *Lexer) NextToken() Token {
	if commentStart, unterminated := l.skipTrivia(); unterminated {
		return l.makeToken(Invalid, commentStart, l.position-commentStart)
	}

	start := l.position
	c := l.current

	switch {
	case c == 0:
		return l.makeToken(EOF, start, 0)
	case c == '(':
		l.advance()
		return l.makeToken(LeftParen, start, 1)
	case c == ')':
		l.advance()
		return l.makeToken(RightParen, start, 1)
	case c == '{':
		l.advance()
		return l.makeToken(LeftBrace, start, 1)
	case c == '}':
		l.advance()
		return l.makeToken(RightBrace, start, 1)
	case c == ',':
		l.advance()
		return l.makeToken(Comma, start, 1)
	case c == '.':
		l.advance()
		return l.makeToken(Dot, start, 1)
	case c == '-':
		l.advance()
		return l.makeToken(Minus, start, 1)
	case c == '+':
		l.advance()
		return l.makeToken(Plus, start, 1)
	case c == ';':
		l.advance()
		return l.makeToken(Semicolon, start, 1)
	case c == '*':
		l.advance()
		return l.makeToken(Star, start, 1)
	case c == '!':
		l.advance()
		if l.current == '=' {
			l.advance()
			return l.makeToken(BangEqual, start, 2)
		}
		return l.makeToken(Bang, start, 1)
	case c == '=':
		l.advance()
		if l.current == '=' {
			l.advance()
			return l.makeToken(EqualEqual, start, 2)
		}
		return l.makeToken(Equal, start, 1)
	case c == '<':
		l.advance()
		if l.current == '=' {
			l.advance()
			return l.makeToken(LessEqual, start, 2)
		}
		return l.makeToken(Less, start, 1)
	case c == '>':
		l.advance()
		if l.current == '=' {
			l.advance()
			return l.makeToken(GreaterEqual, start, 2)
		}
		return l.makeToken(Greater, start, 1)
	case c == '/':
		// skipTrivia already consumed // and /* */ comments; a bare
		// slash here is division.
		l.advance()
		return l.makeToken(Slash, start, 1)
	case c == '"':
		return l.readString(start)
	case isDigit(c):
		return l.readNumber(start)
	case isAlpha(c):
		return l.readIdentifier(start)
	default:
		return l.readInvalid(start)
	}
}

// skipTrivia advances past whitespace, line comments, and block
// comments. An unterminated block comment is consumed to EOF and its
// start offset returned with unterminated=true, so NextToken reports it
// as one Invalid token running to EOF.
func (l *Lexer) skipTrivia() (commentStart int, unterminated bool) {
	for {
		switch {
		case isSpace(l.current):
			l.advance()
		case l.current == '/' && l.peek() == '/':
			for l.current != '\n' && l.current != 0 {
				l.advance()
			}
		case l.current == '/' && l.peek() == '*':
			commentStart = l.position
			l.advance()
			l.advance()
			for {
				if l.current == 0 {
					return commentStart, true
				}
				if l.current == '*' && l.peek() == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return 0, false
		}
	}
}

// readString scans a string literal. A backslash quotes any single
// following character (the escape itself is left in the lexeme; actual
// unescaping is a consumer concern, per spec). Reaching EOF before the
// closing quote yields an Invalid token spanning to EOF.
func (l *Lexer) readString(start int) Token {
	l.advance() // opening quote
	for l.current != '"' {
		if l.current == 0 {
			return l.makeToken(Invalid, start, l.position-start)
		}
		if l.current == '\\' {
			l.advance()
			if l.current == 0 {
				return l.makeToken(Invalid, start, l.position-start)
			}
		}
		l.advance()
	}
	l.advance() // closing quote
	return l.makeToken(String, start, l.position-start)
}

// readNumber scans \d+(\.\d+)?. A trailing '.' with no digit after it
// is left unconsumed so it tokenizes as a separate Dot (e.g. "1.foo()").
func (l *Lexer) readNumber(start int) Token {
	for isDigit(l.current) {
		l.advance()
	}
	if l.current == '.' && isDigit(l.peek()) {
		l.advance()
		for isDigit(l.current) {
			l.advance()
		}
	}
	tok := l.makeToken(Number, start, l.position-start)
	tok.Number, _ = strconv.ParseFloat(tok.Lexeme, 64)
	return tok
}

func (l *Lexer) readIdentifier(start int) Token {
	for isAlpha(l.current) || isDigit(l.current) {
		l.advance()
	}
	length := l.position - start
	lexeme := l.src.Text[start : start+length]
	if kind, ok := Keywords[lexeme]; ok {
		l.nextID++
		return Token{Kind: kind, Lexeme: lexeme, Src: l.src, Offset: start, Length: length, ID: l.nextID}
	}
	return l.makeToken(Identifier, start, length)
}

// readInvalid consumes a run of characters the scanner does not
// recognize, extending through any following non-alphanumeric,
// non-whitespace bytes so one bad run becomes one Invalid token rather
// than many.
func (l *Lexer) readInvalid(start int) Token {
	l.advance()
	for l.current != 0 && !isSpace(l.current) && !isAlpha(l.current) && !isDigit(l.current) {
		l.advance()
	}
	return l.makeToken(Invalid, start, l.position-start)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isPunct(c byte) bool {
	switch c {
	case '(', ')', '{', '}', ',', '.', '-', '+', ';', '*', '!', '=', '<', '>', '/', '"':
		return true
	}
	return false
}
