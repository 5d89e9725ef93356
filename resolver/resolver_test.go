package resolver_test

import (
	"testing"

	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/resolver"
	"github.com/stretchr/testify/require"
)

func resolveSrc(t *testing.T, src string) (resolver.Locals, error) {
	t.Helper()
	toks := lexer.New(src).Tokens()
	stmts, perr := parser.New(toks).Parse()
	require.NoError(t, perr)
	return resolver.New().Resolve(stmts)
}

func TestResolveGlobalIsUnrecorded(t *testing.T) {
	locals, err := resolveSrc(t, "var a = 1; print a;")
	require.NoError(t, err)
	require.Empty(t, locals, "globals are not hop-counted, only resolved dynamically")
}

func TestResolveLocalHopCount(t *testing.T) {
	locals, err := resolveSrc(t, "{ var a = 1; { print a; } }")
	require.NoError(t, err)
	require.Len(t, locals, 1)
	for _, hops := range locals {
		require.Equal(t, 1, hops)
	}
}

func TestReadOwnInitializerIsError(t *testing.T) {
	_, err := resolveSrc(t, "{ var a = a; }")
	require.Error(t, err)
}

func TestDuplicateLocalDeclarationIsError(t *testing.T) {
	_, err := resolveSrc(t, "{ var a = 1; var a = 2; }")
	require.Error(t, err)
}

func TestDuplicateGlobalDeclarationIsAllowed(t *testing.T) {
	_, err := resolveSrc(t, "var a = 1; var a = 2;")
	require.NoError(t, err)
}

func TestReturnAtTopLevelIsError(t *testing.T) {
	_, err := resolveSrc(t, "return 1;")
	require.Error(t, err)
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	_, err := resolveSrc(t, "class C { init() { return 1; } }")
	require.Error(t, err)
}

func TestBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, err := resolveSrc(t, "class C { init() { return; } }")
	require.NoError(t, err)
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, err := resolveSrc(t, "print this;")
	require.Error(t, err)
}

func TestSuperOutsideClassIsError(t *testing.T) {
	_, err := resolveSrc(t, "fun f() { return super.x; }")
	require.Error(t, err)
}

func TestSuperWithoutSuperclassIsError(t *testing.T) {
	_, err := resolveSrc(t, "class C { m() { return super.x; } }")
	require.Error(t, err)
}

func TestSelfInheritanceIsError(t *testing.T) {
	_, err := resolveSrc(t, "class C < C {}")
	require.Error(t, err)
}

func TestValidSubclassSuperCallResolves(t *testing.T) {
	_, err := resolveSrc(t, "class A { m() { print 1; } } class B < A { m() { super.m(); } }")
	require.NoError(t, err)
}

func TestThisInsideMethodResolves(t *testing.T) {
	_, err := resolveSrc(t, "class C { m() { print this; } }")
	require.NoError(t, err)
}
