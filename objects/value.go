// Package objects defines Lox's runtime value representation: a closed
// sum of Nil, Bool, Number, and String, plus the Callable interface
// functions/classes/native builtins all implement.
package objects

import (
	"fmt"
	"strconv"
)

// Value is any runtime Lox value. It mirrors go-mix's GoMixObject
// interface (GetType/ToString) but collapses go-mix's separate
// Integer/Float into one Number, since Lox has a single numeric type.
type Value interface {
	Type() string
	String() string
}

// Nil is Lox's `nil`. There is exactly one meaningful value of this
// type; IsNil below is the idiomatic way to test for it.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Bool is a Lox boolean.
type Bool bool

func (Bool) Type() string     { return "boolean" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Number is Lox's single numeric type, a float64 (no separate int).
type Number float64

func (Number) Type() string { return "number" }
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is a Lox string.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }

// IsNil reports whether v is Lox's nil value (or a Go nil interface,
// which the interpreter treats identically — e.g. an omitted `var`
// initializer).
func IsNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Nil)
	return ok
}

// IsTruthy implements Lox's truthiness rule: everything is truthy
// except nil and false.
func IsTruthy(v Value) bool {
	if IsNil(v) {
		return false
	}
	if b, ok := v.(Bool); ok {
		return bool(b)
	}
	return true
}

// Equal implements Lox's `==`: same dynamic type and same value: two
// nils are always equal, numbers/strings/bools compare by value, and
// anything else (instances, functions, classes) compares by identity
// via Go's == on the interface, same as go-mix's ToObject-based equals.
func Equal(a, b Value) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Display renders v the way `print` does. Distinct from String()
// because some values (none currently) may someday want a different
// debug vs. display form; kept separate to match go-mix's
// ToString/ToObject split.
func Display(v Value) string {
	if IsNil(v) {
		return "nil"
	}
	return v.String()
}

// ErrType is returned by operations that receive a value of the wrong
// dynamic type, e.g. arithmetic on a string.
type ErrType struct {
	Operation string
	Value     Value
}

func (e *ErrType) Error() string {
	return fmt.Sprintf("%s: unsupported operand type %s", e.Operation, e.Value.Type())
}
