package bytecode_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/akashmaji946/lox-mix/bytecode"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/stretchr/testify/require"
)

func TestAddConstantReturnsIncreasingIndices(t *testing.T) {
	c := bytecode.NewChunk()
	i0, err := c.AddConstant(objects.Number(1))
	require.NoError(t, err)
	i1, err := c.AddConstant(objects.Number(2))
	require.NoError(t, err)
	require.Equal(t, byte(0), i0)
	require.Equal(t, byte(1), i1)
}

func TestAddConstantErrorsPastCapacity(t *testing.T) {
	c := bytecode.NewChunk()
	for i := 0; i < 256; i++ {
		_, err := c.AddConstant(objects.Number(float64(i)))
		require.NoError(t, err)
	}
	_, err := c.AddConstant(objects.Number(256))
	require.Error(t, err)
}

func TestCompileTooManyConstantsIsCompileError(t *testing.T) {
	var src strings.Builder
	// Each literal must be distinct so every one allocates a fresh
	// constant-pool slot instead of being folded/reused.
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&src, "print %d.5;", i)
	}
	_, err := bytecode.Compile(src.String())
	require.Error(t, err)
}

func TestDisassembleIncludesOpNames(t *testing.T) {
	chunk, err := bytecode.Compile(`print 1 + 2;`)
	require.NoError(t, err)
	text := chunk.Disassemble("test")
	require.Contains(t, text, "OpConstant")
	require.Contains(t, text, "OpAdd")
	require.Contains(t, text, "OpPrint")
}
