// Package scope implements Lox's lexical environment chain.
package scope

import (
	"fmt"

	"github.com/akashmaji946/lox-mix/objects"
)

// Environment is one scope's variable bindings plus a pointer to its
// enclosing scope. Shape and method names (Define/Get/Assign walking
// Parent) follow go-mix's scope.Scope.
//
// One deliberate divergence from go-mix: there is no Copy(). go-mix's
// Scope.Copy() shallow-clones bindings into a captured closure scope to
// paper over its interpreter not otherwise seeing bindings added to a
// scope after a closure captured it. Lox's closures must see exactly
// that: a function captures *this* Environment pointer at definition
// time, and every call creates one *child* Environment — the captured
// pointer itself is never replaced or snapshotted. That is both the
// Lox-correct behavior and simpler than the copy-on-call workaround.
type Environment struct {
	values map[string]objects.Value
	Parent *Environment
}

// New creates a top-level (global) environment with no parent.
func New() *Environment {
	return &Environment{values: make(map[string]objects.Value)}
}

// Child creates a new scope nested inside e, e.g. for a block or a
// function call.
func (e *Environment) Child() *Environment {
	return &Environment{values: make(map[string]objects.Value), Parent: e}
}

// Define binds name in this scope, shadowing any outer binding of the
// same name. Re-defining an existing name in the same scope is allowed
// (redeclaring a global, e.g. on a later REPL line, relies on this).
func (e *Environment) Define(name string, value objects.Value) {
	e.values[name] = value
}

// Get looks up name by walking outward through Parent until found.
func (e *Environment) Get(name string) (objects.Value, error) {
	for env := e; env != nil; env = env.Parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedError{Name: name}
}

// Assign rebinds an already-declared name, walking outward the same way
// Get does. Unlike Define, it errors if name was never declared
// anywhere in the chain (Lox does not allow implicit global creation
// via assignment).
func (e *Environment) Assign(name string, value objects.Value) error {
	for env := e; env != nil; env = env.Parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return &UndefinedError{Name: name}
}

// GetAt looks up name exactly `hops` scopes up — the resolver's
// hop-count fast path, skipping the dynamic search Get performs.
func (e *Environment) GetAt(hops int, name string) (objects.Value, error) {
	env := e.ancestor(hops)
	if v, ok := env.values[name]; ok {
		return v, nil
	}
	return nil, &UndefinedError{Name: name}
}

// AssignAt rebinds name exactly `hops` scopes up.
func (e *Environment) AssignAt(hops int, name string, value objects.Value) {
	e.ancestor(hops).values[name] = value
}

func (e *Environment) ancestor(hops int) *Environment {
	env := e
	for i := 0; i < hops; i++ {
		env = env.Parent
	}
	return env
}

// UndefinedError reports a reference to a name with no binding in
// scope (get, assign, or dynamic-global lookup all share this).
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}
