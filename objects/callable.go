package objects

// Callable is implemented by anything that can appear in call position:
// user-defined functions, classes (whose call constructs an instance),
// and native builtins like clock. Grounded on
// original_source/src/lox_callable/mod.rs's LoxCallable trait
// (arity()/call()). Only Arity is declared here: Call takes the
// interpreter, so eval's own callable interface adds it, which keeps
// objects free of any dependency on function/eval.
type Callable interface {
	Value
	Arity() int
}
