// Package eval is Lox's tree-walking back end: it executes a resolved
// statement list directly against an Environment chain, without
// compiling to any intermediate form. Sentinel-object non-local exit
// (ReturnValue/Break) and block/if/while execution shape follow
// go-mix's eval_statements.go/eval_loops.go/eval_controls.go; class,
// method, and super semantics follow
// original_source/src/interpreter/mod.rs.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/lox-mix/function"
	"github.com/akashmaji946/lox-mix/internal/logx"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/resolver"
	"github.com/akashmaji946/lox-mix/scope"
)

// RuntimeError is a Lox runtime fault: a type error, arity mismatch,
// undefined variable/property, or any other failure surfaced while
// executing an already-resolved program.
type RuntimeError struct {
	Token   interface{ Line() int }
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return fmt.Sprintf("[line %d] %s", e.Token.Line(), e.Message)
}

// Interpreter holds all tree-walking execution state. Construct with
// New; Interpret runs a whole program, stopping at the first runtime
// error (matching the reference's "a runtime error aborts the current
// program" rule).
type Interpreter struct {
	Globals     *scope.Environment
	environment *scope.Environment
	locals      resolver.Locals
	out         io.Writer
}

// New creates an Interpreter with clock pre-installed in globals.
func New(locals resolver.Locals) *Interpreter {
	globals := scope.New()
	interp := &Interpreter{Globals: globals, environment: globals, locals: locals, out: os.Stdout}
	installBuiltins(globals)
	return interp
}

// SetOutput redirects `print` output; tests use this to capture stdout
// without touching the real os.Stdout.
func (i *Interpreter) SetOutput(w io.Writer) { i.out = w }

// Interpret executes every top-level statement in source order.
func (i *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			logx.Get().WithError(err).Error("runtime error")
			return err
		}
	}
	return nil
}

// ExecuteBlock runs stmts in a fresh environment (env), restoring the
// interpreter's previous environment on the way out even if execution
// errors or a control-flow sentinel propagates — matching go-mix's
// "restore on exit, even on error" rule. It does NOT intercept
// returnSignal: a `return` inside a nested block must keep propagating
// as an ordinary error until it reaches the function-call boundary
// (CallFunctionBody below) — otherwise `{ return 1; }` or a `return`
// inside a `while`/`for` body would be swallowed by the block it
// happens to sit in instead of exiting the function.
func (i *Interpreter) ExecuteBlock(stmts []parser.Stmt, env *scope.Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CallFunctionBody satisfies function.Interpreter: it is the one place
// a returnSignal is caught and turned into its carried value, since
// only a function/method call is supposed to stop at a `return` —
// nested blocks just propagate it (see ExecuteBlock).
func (i *Interpreter) CallFunctionBody(stmts []parser.Stmt, env *scope.Environment) (objects.Value, error) {
	err := i.ExecuteBlock(stmts, env)
	if err == nil {
		return nil, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

// EvaluateTopLevel evaluates a single expression against the
// interpreter's current global/REPL environment, without requiring a
// wrapping statement — used by the REPL's bare-expression auto-print.
func (i *Interpreter) EvaluateTopLevel(expr parser.Expr) (objects.Value, error) {
	return i.evaluate(expr)
}

var _ function.Interpreter = (*Interpreter)(nil)
