package eval

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/function"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
)

// execute dispatches one statement. A non-nil error is either a
// RuntimeError (propagate to the caller and abort) or one of the
// control-flow sentinels in eval_controls.go (propagate until the
// construct that's supposed to catch it: While for breakSignal,
// CallFunctionBody for returnSignal — ExecuteBlock itself must not
// intercept either sentinel, or a `return`/`break` nested one block
// deeper than its target would stop there instead of continuing up).
func (i *Interpreter) execute(stmt parser.Stmt) error {
	switch n := stmt.(type) {
	case *parser.ExpressionStmt:
		_, err := i.evaluate(n.Expression)
		return err

	case *parser.PrintStmt:
		v, err := i.evaluate(n.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, objects.Display(v))
		return nil

	case *parser.VarStmt:
		var value objects.Value = objects.Nil{}
		if n.Initializer != nil {
			v, err := i.evaluate(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(n.Name.Lexeme, value)
		return nil

	case *parser.BlockStmt:
		return i.ExecuteBlock(n.Statements, i.environment.Child())

	case *parser.IfStmt:
		cond, err := i.evaluate(n.Condition)
		if err != nil {
			return err
		}
		if objects.IsTruthy(cond) {
			return i.execute(n.Then)
		}
		if n.Else != nil {
			return i.execute(n.Else)
		}
		return nil

	case *parser.WhileStmt:
		for {
			cond, err := i.evaluate(n.Condition)
			if err != nil {
				return err
			}
			if !objects.IsTruthy(cond) {
				return nil
			}
			if err := i.execute(n.Body); err != nil {
				if _, ok := err.(*breakSignal); ok {
					return nil
				}
				return err
			}
		}

	case *parser.BreakStmt:
		return &breakSignal{}

	case *parser.FunctionStmt:
		fn := &function.Function{Decl: n, Closure: i.environment, IsInitializer: false}
		i.environment.Define(n.Name.Lexeme, fn)
		return nil

	case *parser.ReturnStmt:
		var value objects.Value = objects.Nil{}
		if n.Value != nil {
			v, err := i.evaluate(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *parser.ClassStmt:
		return i.executeClass(n)

	default:
		return &RuntimeError{Message: fmt.Sprintf("unhandled statement %T", stmt)}
	}
}
