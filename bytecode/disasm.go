package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders every instruction in chunk as human-readable
// text, one line per instruction, under a name header — used by
// bytecode's own tests. The LOX_LOG_LEVEL=debug trace formats one
// instruction at a time through disassembleInstruction.
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	offset := 0
	for offset < len(c.Code) {
		offset = c.disassembleInstruction(&b, offset)
	}
	return b.String()
}

// disassembleInstruction prints one instruction at offset and returns
// the offset of the next one. The offset printed is always the current
// instruction pointer itself — a prior version computed it as
// `ip - len(code)`, which underflows to a huge value once ip no longer
// trails the end of the chunk; fixed here to print offset directly.
func (c *Chunk) disassembleInstruction(b *strings.Builder, offset int) int {
	fmt.Fprintf(b, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(b, "   | ")
	} else {
		fmt.Fprintf(b, "%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant, OpGetGlobal, OpSetGlobal, OpDefineGlobal:
		return c.constantInstruction(b, op, offset)
	case OpGetLocal, OpSetLocal:
		return c.byteInstruction(b, op, offset)
	case OpJump, OpJumpIfFalse, OpLoop:
		return c.jumpInstruction(b, op, offset)
	default:
		fmt.Fprintln(b, op.String())
		return offset + 1
	}
}

func (c *Chunk) constantInstruction(b *strings.Builder, op OpCode, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'\n", op.String(), idx, c.Constants[idx].String())
	return offset + 2
}

func (c *Chunk) byteInstruction(b *strings.Builder, op OpCode, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d\n", op.String(), slot)
	return offset + 2
}

func (c *Chunk) jumpInstruction(b *strings.Builder, op OpCode, offset int) int {
	hi, lo := c.Code[offset+1], c.Code[offset+2]
	jump := int(hi)<<8 | int(lo)
	sign := 1
	if op == OpLoop {
		sign = -1
	}
	target := offset + 3 + sign*jump
	fmt.Fprintf(b, "%-16s %4d -> %d\n", op.String(), offset, target)
	return offset + 3
}
