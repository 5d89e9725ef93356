package bytecode_test

import (
	"strings"
	"testing"

	"github.com/akashmaji946/lox-mix/bytecode"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var out strings.Builder
	vm := bytecode.New(&out)
	err := vm.Interpret(src)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestMixedAddIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 + "a";`)
	require.Error(t, err)
	require.IsType(t, &bytecode.RuntimeError{}, err)
}

func TestGlobalVarDefineAndGet(t *testing.T) {
	out, err := run(t, "var a = 1; print a;")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestAssignToUndefinedGlobalIsRuntimeError(t *testing.T) {
	// SetGlobal must error when the name was never defined — the fixed
	// rule, not the inverted one that used to silently redefine it.
	_, err := run(t, "a = 1;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable")
}

func TestAssignToExistingGlobalUpdatesInPlace(t *testing.T) {
	out, err := run(t, "var a = 1; a = 2; print a;")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestGetUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, "print nope;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable")
}

func TestLocalVarShadowing(t *testing.T) {
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

func TestIfElse(t *testing.T) {
	out, err := run(t, `
		if (1 < 2) print "yes"; else print "no";
	`)
	require.NoError(t, err)
	require.Equal(t, "yes\n", out)
}

func TestLogicalAndShortCircuits(t *testing.T) {
	out, err := run(t, `print false and (1/0 > 0);`)
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
}

func TestLogicalOrShortCircuits(t *testing.T) {
	out, err := run(t, `print true or (1/0 > 0);`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForLoop(t *testing.T) {
	out, err := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestBreakExitsInnermostLoop(t *testing.T) {
	out, err := run(t, `
		for (var i = 0; i < 10; i = i + 1) {
			if (i == 3) break;
			print i;
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestNestedLoopsBreakInnerOnly(t *testing.T) {
	out, err := run(t, `
		for (var i = 0; i < 2; i = i + 1) {
			var j = 0;
			while (j < 5) {
				if (j == 2) break;
				print j;
				j = j + 1;
			}
			print i;
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n0\n0\n1\n1\n", out)
}

func TestBreakOutsideLoopIsCompileError(t *testing.T) {
	_, err := run(t, `break;`)
	require.Error(t, err)
}

func TestDivisionByZeroIsInfNotError(t *testing.T) {
	out, err := run(t, "print 1 / 0;")
	require.NoError(t, err)
	require.Equal(t, "+Inf\n", out)
}

func TestReadLocalInOwnInitializerIsCompileError(t *testing.T) {
	_, err := run(t, `{ var a = a; }`)
	require.Error(t, err)
}

func TestDuplicateLocalInSameScopeIsCompileError(t *testing.T) {
	_, err := run(t, `{ var a = 1; var a = 2; }`)
	require.Error(t, err)
}
