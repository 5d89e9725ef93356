package function

import "github.com/akashmaji946/lox-mix/objects"

// Class is a Lox class: a name, its method table, and an optional
// superclass for single inheritance. Calling a Class constructs an
// Instance and, if present, runs its `init` method.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Type() string     { return "class" }
func (c *Class) String() string { return c.Name }

// FindMethod looks up a method by name, walking the superclass chain —
// the only place inheritance actually resolves a name.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the constructor's arity: `init`'s arity if defined, else 0.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or an ancestor)
// defines `init`, runs it bound to that instance.
func (c *Class) Call(interp Interpreter, args []objects.Value) (objects.Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
