// Package repl implements the tree-walking interpreter's interactive
// prompt: banner, readline-backed line editing, and per-line parse +
// resolve + evaluate with bare-expression auto-print. Shape (a banner,
// a prompt, and a Start loop reading lines until EOF, with output going
// to the io.Writer given to New) follows go-mix's repl.Start, retargeted from GoMix's statement grammar to Lox's; the
// bare-expression auto-print convention follows
// original_source/crates/rlox/src/lox.rs, where a line that parses as a
// single expression statement has its value printed even without an
// explicit `print`.
package repl

import (
	"fmt"
	"io"

	"github.com/akashmaji946/lox-mix/eval"
	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/resolver"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

const banner = "Lox REPL — type an expression or statement, Ctrl-D to exit."

// REPL holds the persistent interpreter state across lines: variables
// and functions defined on one line stay visible to the next, same as
// go-mix's REPL reusing one evaluator across the session.
type REPL struct {
	out    io.Writer
	interp *eval.Interpreter
	locals resolver.Locals
}

// New creates a REPL writing program output to out.
func New(out io.Writer) *REPL {
	locals := make(resolver.Locals)
	interp := eval.New(locals)
	interp.SetOutput(out)
	return &REPL{out: out, interp: interp, locals: locals}
}

// Start runs the read-eval-print loop until EOF (Ctrl-D) or an
// unrecoverable readline error.
func (r *REPL) Start() error {
	fmt.Fprintln(r.out, color.CyanString(banner))

	rl, err := readline.New(color.GreenString("lox> "))
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		r.evalLine(line)
	}
}

func (r *REPL) evalLine(line string) {
	toks := lexer.New(line).Tokens()
	p := parser.New(toks)
	stmts, perr := p.Parse()
	if perr != nil {
		fmt.Fprintln(r.out, color.RedString(perr.Error()))
		return
	}

	// A lone expression statement auto-prints its value, same as typing
	// `print <expr>;` would, without requiring the explicit keyword.
	if len(stmts) == 1 {
		if exprStmt, ok := stmts[0].(*parser.ExpressionStmt); ok {
			r.evalAndPrint(stmts, exprStmt)
			return
		}
	}

	r.runStatements(stmts)
}

func (r *REPL) evalAndPrint(stmts []parser.Stmt, exprStmt *parser.ExpressionStmt) {
	locals, rerr := resolver.New().Resolve(stmts)
	if rerr != nil {
		fmt.Fprintln(r.out, color.RedString(rerr.Error()))
		return
	}
	mergeLocals(r.locals, locals)

	value, err := r.interp.EvaluateTopLevel(exprStmt.Expression)
	if err != nil {
		fmt.Fprintln(r.out, color.RedString(err.Error()))
		return
	}
	fmt.Fprintln(r.out, objects.Display(value))
}

func (r *REPL) runStatements(stmts []parser.Stmt) {
	locals, rerr := resolver.New().Resolve(stmts)
	if rerr != nil {
		fmt.Fprintln(r.out, color.RedString(rerr.Error()))
		return
	}
	mergeLocals(r.locals, locals)

	if err := r.interp.Interpret(stmts); err != nil {
		fmt.Fprintln(r.out, color.RedString(err.Error()))
	}
}

// mergeLocals copies a fresh per-line resolve into the REPL's
// accumulated hop table; each line resolves independently (node IDs
// restart at 1 per parse) but the interpreter only ever looks up a
// node's ID within the same line's evaluate call, so merging is safe.
func mergeLocals(dst, src resolver.Locals) {
	for k, v := range src {
		dst[k] = v
	}
}
