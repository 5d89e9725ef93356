package eval

import "github.com/akashmaji946/lox-mix/objects"

// returnSignal and breakSignal are non-local exits threaded back up
// through ordinary Go error returns — go-mix's ReturnValue/Break
// sentinel-object idiom, adapted to checking err.(type) after every
// statement instead of a GetType() check. Neither is a RuntimeError:
// reaching execute's top level with one unhandled is an interpreter
// bug (the resolver/parser guarantee break only appears inside a loop,
// and every Function.Call goes through CallFunctionBody, the one place
// that catches returnSignal).
type returnSignal struct{ value objects.Value }

func (*returnSignal) Error() string { return "return outside of a function call" }

type breakSignal struct{}

func (*breakSignal) Error() string { return "break outside of a loop" }
