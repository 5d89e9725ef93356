package eval_test

import (
	"strings"
	"testing"

	"github.com/akashmaji946/lox-mix/eval"
	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/resolver"
	"github.com/stretchr/testify/require"
)

// run parses, resolves, and interprets src, returning everything
// written via `print` and any error encountered along the way.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks := lexer.New(src).Tokens()
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)

	locals, err := resolver.New().Resolve(stmts)
	require.NoError(t, err)

	var out strings.Builder
	interp := eval.New(locals)
	interp.SetOutput(&out)
	runErr := interp.Interpret(stmts)
	return out.String(), runErr
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestMixedPlusIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 + "a";`)
	require.Error(t, err)
}

func TestDivisionByZeroIsInfNotError(t *testing.T) {
	out, err := run(t, "print 1 / 0;")
	require.NoError(t, err)
	require.Equal(t, "+Inf\n", out)
}

func TestVarShadowingInBlock(t *testing.T) {
	out, err := run(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	require.Equal(t, "inner\nouter\n", out)
}

func TestClosureSeesLaterMutation(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", out)
}

func TestWhileBreak(t *testing.T) {
	out, err := run(t, `
		var i = 0;
		while (true) {
			if (i >= 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForDesugaring(t *testing.T) {
	out, err := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestClassInstanceFieldsAndMethods(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "hi " + this.name;
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	require.NoError(t, err)
	require.Equal(t, "hi world\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
		class A {
			speak() { print "A"; }
		}
		class B < A {
			speak() {
				super.speak();
				print "B";
			}
		}
		B().speak();
	`)
	require.NoError(t, err)
	require.Equal(t, "A\nB\n", out)
}

func TestCallingUncallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var a = 1; a();`)
	require.Error(t, err)
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `class C {} C().nope;`)
	require.Error(t, err)
}

func TestReturnInsideBraceBlockExitsFunction(t *testing.T) {
	out, err := run(t, `
		fun f() {
			{
				return 1;
			}
			print 2;
		}
		print f();
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestReturnInsideWhileExitsFunction(t *testing.T) {
	out, err := run(t, `
		fun f() {
			while (true) {
				return 1;
			}
			print 2;
		}
		print f();
	`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestReturnInsideForExitsFunction(t *testing.T) {
	out, err := run(t, `
		fun f() {
			for (var i = 0; i < 10; i = i + 1) {
				return i;
			}
			print 2;
		}
		print f();
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestClockIsCallableAndReturnsNumber(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}
