// Package resolver performs the static analysis pass between parsing
// and evaluation: it walks the AST once, assigning every variable
// reference a lexical "hop count" (how many enclosing scopes to climb)
// so the interpreter never has to search the environment chain at
// runtime, and catches a handful of errors only visible statically
// (self-read in its own initializer, return outside a function, this/
// super outside a class, inheriting from yourself).
//
// go-mix has no equivalent pass (its tree-walker searches the
// environment chain dynamically), so this package's shape follows the
// reference resolver at original_source/crates/rlox/src/resolver.rs
// instead, translated into Go's idiom: the Rust struct's mutable scope
// stack becomes a `[]map[string]bool`, and its `Result<()>`-returning
// visitor methods become error-returning methods aggregated into one
// *multierror.Error per resolve.
package resolver

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/hashicorp/go-multierror"
)

type functionType int

const (
	noFunction functionType = iota
	inFunction
	inInitializer
	inMethod
)

type classType int

const (
	noClass classType = iota
	inClass
	inSubclass
)

// Locals maps a resolved expression node's stable ID to the number of
// enclosing scopes between its use and its declaring scope. The
// interpreter consults this instead of an eager per-Environment cache,
// per spec.md's "never the structural hash of the node" requirement.
type Locals map[int]int

// Resolver performs the single static pass described above.
type Resolver struct {
	scopes          []map[string]bool
	locals          Locals
	currentFunction functionType
	currentClass    classType
	errors          *multierror.Error
}

// New creates a Resolver ready to walk a statement list.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve walks every statement and returns the hop-count table
// alongside a non-nil error iff any static error was found. Resolution
// continues past an error so multiple mistakes are reported together,
// same as the parser's panic-mode recovery.
func (r *Resolver) Resolve(stmts []parser.Stmt) (Locals, error) {
	r.resolveStmts(stmts)
	if r.errors != nil {
		return r.locals, r.errors.ErrorOrNil()
	}
	return r.locals, nil
}

func (r *Resolver) fail(tok lexer.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.errors = multierror.Append(r.errors, fmt.Errorf("[line %d] Error at '%s': %s", tok.Line(), tok.Lexeme, msg))
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peekScope() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope as "not yet initialized".
// Declaring the same name twice in one local scope is a static error;
// redeclaration at global scope is allowed (there is no global scope
// map here — the slice is empty at top level).
func (r *Resolver) declare(name lexer.Token) {
	scope := r.peekScope()
	if scope == nil {
		return
	}
	if _, ok := scope[name.Lexeme]; ok {
		r.fail(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if scope := r.peekScope(); scope != nil {
		scope[name.Lexeme] = true
	}
}

// resolveLocal walks outward from the innermost scope, recording the
// hop count the first time it finds name declared.
func (r *Resolver) resolveLocal(node parser.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[node.NodeID()] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treated as global, resolved
	// dynamically by the interpreter at call time.
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveFunction(fn *parser.FunctionStmt, ft functionType) {
	enclosing := r.currentFunction
	r.currentFunction = ft
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *Resolver) resolveStmt(s parser.Stmt) {
	switch n := s.(type) {
	case *parser.ExpressionStmt:
		r.resolveExpr(n.Expression)
	case *parser.PrintStmt:
		r.resolveExpr(n.Expression)
	case *parser.VarStmt:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Statements)
		r.endScope()
	case *parser.IfStmt:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *parser.WhileStmt:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	case *parser.BreakStmt:
		// Legality was already enforced statically by the parser's
		// loopDepth counter.
	case *parser.FunctionStmt:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, inFunction)
	case *parser.ReturnStmt:
		if r.currentFunction == noFunction {
			r.fail(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == inInitializer {
				r.fail(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *parser.ClassStmt:
		r.resolveClass(n)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

func (r *Resolver) resolveClass(stmt *parser.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.fail(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = inSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range stmt.Methods {
		ft := inMethod
		if method.Name.Lexeme == "init" {
			ft = inInitializer
		}
		r.resolveFunction(method, ft)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(e parser.Expr) {
	switch n := e.(type) {
	case *parser.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name)
	case *parser.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *parser.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *parser.Get:
		r.resolveExpr(n.Object)
	case *parser.Grouping:
		r.resolveExpr(n.Inner)
	case *parser.Literal:
		// no sub-expressions, no identifier to resolve
	case *parser.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *parser.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *parser.Super:
		switch r.currentClass {
		case noClass:
			r.fail(n.Keyword, "Can't use 'super' outside of a class.")
		case inClass:
			r.fail(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, n.Keyword)
	case *parser.This:
		if r.currentClass == noClass {
			r.fail(n.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(n, n.Keyword)
	case *parser.Unary:
		r.resolveExpr(n.Right)
	case *parser.Variable:
		if scope := r.peekScope(); scope != nil {
			if initialized, ok := scope[n.Name.Lexeme]; ok && !initialized {
				r.fail(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}
