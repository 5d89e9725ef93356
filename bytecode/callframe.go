package bytecode

// CallFrame is the VM's window onto one executing chunk: its
// instruction pointer and the base offset into the shared value stack
// where its locals/temps begin. This subset has no user-defined
// function calls (spec.md §9's "proper subset: no classes/closures
// yet"), so the VM only ever pushes exactly one frame, for the
// top-level chunk — but keeping the frame/stack-window separation
// rather than folding IP and stack base into the VM itself matches how
// the reference VM is structured and leaves room to grow a Call
// opcode later without reshaping the run loop.
type CallFrame struct {
	Chunk *Chunk
	IP    int
	Base  int
}
