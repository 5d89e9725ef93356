package eval

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/function"
	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
)

// callable is anything the Call expression can invoke: a user Function,
// a Class (constructing an instance), or a native builtin such as
// clock, all of which accept a function.Interpreter and return a value. Declared locally rather than
// in objects to keep objects free of any dependency on function/eval.
type callable interface {
	objects.Callable
	Call(interp function.Interpreter, args []objects.Value) (objects.Value, error)
}

func (i *Interpreter) evaluate(expr parser.Expr) (objects.Value, error) {
	switch n := expr.(type) {
	case *parser.Literal:
		return literalValue(n.Value), nil

	case *parser.Grouping:
		return i.evaluate(n.Inner)

	case *parser.Unary:
		right, err := i.evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		return i.evalUnary(n.Operator, right)

	case *parser.Binary:
		left, err := i.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		return i.evalBinary(n.Operator, left, right)

	case *parser.Logical:
		left, err := i.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Operator.Kind == lexer.Or {
			if objects.IsTruthy(left) {
				return left, nil
			}
		} else {
			if !objects.IsTruthy(left) {
				return left, nil
			}
		}
		return i.evaluate(n.Right)

	case *parser.Variable:
		return i.lookupVariable(n.Name, n)

	case *parser.Assign:
		value, err := i.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if hops, ok := i.locals[n.NodeID()]; ok {
			i.environment.AssignAt(hops, n.Name.Lexeme, value)
		} else if err := i.Globals.Assign(n.Name.Lexeme, value); err != nil {
			return nil, &RuntimeError{Token: n.Name, Message: err.Error()}
		}
		return value, nil

	case *parser.Call:
		return i.evalCall(n)

	case *parser.Get:
		return i.evalGet(n)

	case *parser.Set:
		return i.evalSet(n)

	case *parser.This:
		return i.lookupVariable(n.Keyword, n)

	case *parser.Super:
		return i.evalSuper(n)

	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("unhandled expression %T", expr)}
	}
}

func literalValue(v interface{}) objects.Value {
	switch val := v.(type) {
	case nil:
		return objects.Nil{}
	case bool:
		return objects.Bool(val)
	case float64:
		return objects.Number(val)
	case string:
		return objects.String(val)
	default:
		return objects.Nil{}
	}
}

// lookupVariable resolves name via the hop table when present, falling
// back to a dynamic global lookup otherwise — this is also how This
// bottoms out, since `this` resolves like any other local name. Super
// reads its hop count directly in evalSuper instead.
func (i *Interpreter) lookupVariable(name lexer.Token, node parser.Expr) (objects.Value, error) {
	if hops, ok := i.locals[node.NodeID()]; ok {
		v, err := i.environment.GetAt(hops, name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Token: name, Message: err.Error()}
		}
		return v, nil
	}
	v, err := i.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, &RuntimeError{Token: name, Message: err.Error()}
	}
	return v, nil
}

func (i *Interpreter) evalUnary(op lexer.Token, right objects.Value) (objects.Value, error) {
	switch op.Kind {
	case lexer.Minus:
		n, ok := right.(objects.Number)
		if !ok {
			return nil, &RuntimeError{Token: op, Message: "Operand must be a number."}
		}
		return -n, nil
	case lexer.Bang:
		return objects.Bool(!objects.IsTruthy(right)), nil
	}
	return nil, &RuntimeError{Token: op, Message: "unknown unary operator"}
}

func (i *Interpreter) evalBinary(op lexer.Token, left, right objects.Value) (objects.Value, error) {
	switch op.Kind {
	case lexer.Plus:
		if ln, lok := left.(objects.Number); lok {
			if rn, rok := right.(objects.Number); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(objects.String); lok {
			if rs, rok := right.(objects.String); rok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
	case lexer.Minus, lexer.Star, lexer.Slash, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual:
		ln, lok := left.(objects.Number)
		rn, rok := right.(objects.Number)
		if !lok || !rok {
			return nil, &RuntimeError{Token: op, Message: "Operands must be numbers."}
		}
		switch op.Kind {
		case lexer.Minus:
			return ln - rn, nil
		case lexer.Star:
			return ln * rn, nil
		case lexer.Slash:
			return ln / rn, nil // division by zero yields Inf/NaN, not an error
		case lexer.Greater:
			return objects.Bool(ln > rn), nil
		case lexer.GreaterEqual:
			return objects.Bool(ln >= rn), nil
		case lexer.Less:
			return objects.Bool(ln < rn), nil
		case lexer.LessEqual:
			return objects.Bool(ln <= rn), nil
		}
	case lexer.EqualEqual:
		return objects.Bool(objects.Equal(left, right)), nil
	case lexer.BangEqual:
		return objects.Bool(!objects.Equal(left, right)), nil
	}
	return nil, &RuntimeError{Token: op, Message: "unknown binary operator"}
}

func (i *Interpreter) evalCall(n *parser.Call) (objects.Value, error) {
	calleeVal, err := i.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]objects.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := calleeVal.(callable)
	if !ok {
		return nil, &RuntimeError{Token: n.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{Token: n.Paren, Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))}
	}
	return fn.Call(i, args)
}

func (i *Interpreter) evalGet(n *parser.Get) (objects.Value, error) {
	obj, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*function.Instance)
	if !ok {
		return nil, &RuntimeError{Token: n.Name, Message: "Only instances have properties."}
	}
	v, err := instance.Get(n.Name.Lexeme)
	if err != nil {
		return nil, &RuntimeError{Token: n.Name, Message: err.Error()}
	}
	return v, nil
}

func (i *Interpreter) evalSet(n *parser.Set) (objects.Value, error) {
	obj, err := i.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*function.Instance)
	if !ok {
		return nil, &RuntimeError{Token: n.Name, Message: "Only instances have fields."}
	}
	value, err := i.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name.Lexeme, value)
	return value, nil
}

func (i *Interpreter) evalSuper(n *parser.Super) (objects.Value, error) {
	hops, ok := i.locals[n.NodeID()]
	if !ok {
		return nil, &RuntimeError{Token: n.Keyword, Message: "unresolved 'super'"}
	}
	superVal, err := i.environment.GetAt(hops, "super")
	if err != nil {
		return nil, &RuntimeError{Token: n.Keyword, Message: err.Error()}
	}
	superclass, ok := superVal.(*function.Class)
	if !ok {
		return nil, &RuntimeError{Token: n.Keyword, Message: "'super' did not resolve to a class"}
	}

	thisVal, err := i.environment.GetAt(hops-1, "this")
	if err != nil {
		return nil, &RuntimeError{Token: n.Keyword, Message: err.Error()}
	}
	instance, ok := thisVal.(*function.Instance)
	if !ok {
		return nil, &RuntimeError{Token: n.Keyword, Message: "'this' did not resolve to an instance"}
	}

	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, &RuntimeError{Token: n.Method, Message: fmt.Sprintf("Undefined property '%s'.", n.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}
