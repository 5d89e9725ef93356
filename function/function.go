// Package function implements Lox's three user-level runtime shapes:
// the two callable ones, user-defined functions/methods (Function) and
// classes (Class, whose call constructs an Instance), and instances
// (Instance, not callable, with field storage and method binding on
// access). Shape grounded on go-mix's
// function.Function (Name/Params/Body/Scp) for the function half and
// go-mix's objects.GoMixStruct/GoMixObjectInstance for the class/
// instance half, retargeted from GoMix's no-inheritance struct model to
// Lox's single-inheritance classes per original_source's
// lox_class/lox_instance modules.
package function

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/scope"
)

// Interpreter is the subset of eval.Interpreter that Function.Call
// needs to execute a body. Declaring it here (rather than function
// importing eval) avoids an eval<->function import cycle, since eval
// must import function to construct/call these types.
//
// CallFunctionBody is distinct from eval's own ExecuteBlock: only the
// function-call boundary may intercept a `return`'s non-local exit —
// an ordinary nested block (`{...}`, a `while`/`for` body) must let it
// keep propagating up to that boundary instead of swallowing it.
type Interpreter interface {
	CallFunctionBody(stmts []parser.Stmt, env *scope.Environment) (objects.Value, error)
}

// Function is a user-defined Lox function or method: its declaration
// plus the environment it closed over at definition time.
type Function struct {
	Decl          *parser.FunctionStmt
	Closure       *scope.Environment
	IsInitializer bool
}

func (*Function) Type() string { return "function" }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Bind returns a copy of f whose closure is a new child environment
// with `this` bound to instance — used when a method is looked up on
// an instance, per Lox's "methods are bound to their receiver on
// access, not on call" semantics.
func (f *Function) Bind(instance *Instance) *Function {
	env := f.Closure.Child()
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// Call executes the function body in a fresh child of its closure,
// binding each parameter, and returns the `return` value (or nil for a
// function that falls off the end). An initializer always returns
// `this`, even for a bare `return;`, enforced here rather than by the
// resolver (which only forbids `return <value>` inside init).
func (f *Function) Call(interp Interpreter, args []objects.Value) (objects.Value, error) {
	env := f.Closure.Child()
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := interp.CallFunctionBody(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.IsInitializer {
		this, _ := f.Closure.GetAt(0, "this")
		return this, nil
	}
	if result == nil {
		return objects.Nil{}, nil
	}
	return result, nil
}
