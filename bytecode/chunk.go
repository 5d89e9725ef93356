package bytecode

import "github.com/akashmaji946/lox-mix/objects"

// maxConstants bounds the constant pool: operands that index into it
// are single bytes, so the 257th constant has nowhere to live.
const maxConstants = 256

// Chunk is a compiled unit: a flat instruction stream, its constant
// pool, and a parallel line table (one source line per byte of code,
// same indexing as the Rust reference's three parallel arrays) used to
// attribute runtime errors back to a source line.
type Chunk struct {
	Code      []byte
	Constants []objects.Value
	Lines     []int
}

// NewChunk returns an empty Chunk ready for Write/AddConstant.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Write appends one byte of code, recording the source line it came
// from at the same index in Lines.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends val to the constant pool and returns its index;
// equal values are not deduplicated. Returns an error instead of panicking once the pool is full,
// so the compiler can fold it into its aggregated error list.
func (c *Chunk) AddConstant(val objects.Value) (byte, error) {
	if len(c.Constants) >= maxConstants {
		return 0, errTooManyConstants
	}
	c.Constants = append(c.Constants, val)
	return byte(len(c.Constants) - 1), nil
}
