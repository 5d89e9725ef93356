package bytecode

import (
	"errors"
	"fmt"
)

var errTooManyConstants = errors.New("too many constants in one chunk")

// CompileError is a single static fault raised while compiling source
// into a Chunk — a syntax error or a resource limit (too many
// constants, too many locals, a jump too large to encode).
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// RuntimeError is a VM fault: a type error, an undefined global, or
// any other failure surfaced while running an already-compiled Chunk.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

