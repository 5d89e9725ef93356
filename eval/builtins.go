package eval

import (
	"fmt"
	"time"

	"github.com/akashmaji946/lox-mix/function"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/akashmaji946/lox-mix/scope"
)

// clockSource is the time seam for clock's millisecond reading; it
// defaults to the wall clock.
var clockSource = func() time.Time { return time.Now() }

// nativeFunction is a builtin implemented in Go rather than Lox, e.g.
// clock. It satisfies the same callable interface as *function.Function
// and *function.Class.
type nativeFunction struct {
	name  string
	arity int
	fn    func(args []objects.Value) (objects.Value, error)
}

func (*nativeFunction) Type() string     { return "native function" }
func (n *nativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *nativeFunction) Arity() int     { return n.arity }
func (n *nativeFunction) Call(_ function.Interpreter, args []objects.Value) (objects.Value, error) {
	return n.fn(args)
}

func installBuiltins(globals *scope.Environment) {
	globals.Define("clock", &nativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(args []objects.Value) (objects.Value, error) {
			return objects.Number(float64(clockSource().UnixMilli())), nil
		},
	})
}
