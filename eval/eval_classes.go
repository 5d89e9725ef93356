package eval

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/function"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/parser"
)

// executeClass implements the seven-step class-evaluation sequence:
// resolve the optional superclass, pre-declare the class name as Nil
// (so methods can reference their own class recursively), push a
// `super` scope if there's a superclass, build every method closure,
// construct the Class, pop the `super` scope, then assign the real
// Class value into the name declared in step 2.
func (i *Interpreter) executeClass(stmt *parser.ClassStmt) error {
	var superclass *function.Class
	if stmt.Superclass != nil {
		superVal, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := superVal.(*function.Class)
		if !ok {
			return &RuntimeError{Token: stmt.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	i.environment.Define(stmt.Name.Lexeme, objects.Nil{})

	classEnv := i.environment
	if superclass != nil {
		classEnv = classEnv.Child()
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*function.Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = &function.Function{
			Decl:          m,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &function.Class{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}

	if err := i.environment.Assign(stmt.Name.Lexeme, class); err != nil {
		return &RuntimeError{Token: stmt.Name, Message: fmt.Sprintf("internal error defining class: %v", err)}
	}
	return nil
}
