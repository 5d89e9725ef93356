package function

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/objects"
)

// Instance is a runtime object created by calling a Class: a class
// pointer plus a per-instance field map. Methods are bound to the
// instance lazily, on access (Get), not stored per-instance — so two
// Gets of the same method on the same instance return two distinct
// (but behaviorally identical) bound Functions, matching Lox's
// specified semantics.
type Instance struct {
	Class  *Class
	Fields map[string]objects.Value
}

// NewInstance creates a zero-field instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]objects.Value)}
}

func (*Instance) Type() string { return "instance" }

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.Class.Name)
}

// Get resolves a property access: an instance field takes precedence
// over a method of the same name, and a found method is bound to this
// instance before it's returned.
func (i *Instance) Get(name string) (objects.Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method.Bind(i), nil
	}
	return nil, &UndefinedPropertyError{Name: name}
}

// Set assigns an instance field, creating it if absent — Lox instances
// are open: any field name may be assigned at any time.
func (i *Instance) Set(name string, value objects.Value) {
	i.Fields[name] = value
}

// UndefinedPropertyError reports a Get on a name that is neither a
// field nor a method, anywhere up the class's inheritance chain.
type UndefinedPropertyError struct {
	Name string
}

func (e *UndefinedPropertyError) Error() string {
	return fmt.Sprintf("Undefined property '%s'.", e.Name)
}
