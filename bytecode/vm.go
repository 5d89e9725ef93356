package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/akashmaji946/lox-mix/internal/logx"
	"github.com/akashmaji946/lox-mix/objects"
	"github.com/sirupsen/logrus"
)

// maxFrames is the call-frame stack bound. This subset never pushes
// more than one frame (no user-defined calls — see CallFrame), and no
// code in the VM compares the frame count against it.
const maxFrames = 64

// VM executes a compiled Chunk directly: fetch byte, dispatch, repeat.
// It shares objects.Value with the tree-walking back end so arithmetic,
// truthiness, and equality agree between the two.
type VM struct {
	frames  []*CallFrame
	stack   []objects.Value
	globals map[string]objects.Value
	out     io.Writer
}

// New returns a VM with program output directed to out.
func New(out io.Writer) *VM {
	return &VM{globals: make(map[string]objects.Value), out: out}
}

// Interpret compiles src and runs it to completion (or to the first
// runtime error). Static (compile) errors are returned without
// attempting to run anything.
func (vm *VM) Interpret(src string) error {
	chunk, err := Compile(src)
	if err != nil {
		return err
	}
	return vm.Run(chunk)
}

// Run executes an already-compiled Chunk as the program's sole
// top-level frame.
func (vm *VM) Run(chunk *Chunk) error {
	vm.frames = []*CallFrame{{Chunk: chunk}}
	vm.stack = vm.stack[:0]
	err := vm.run()
	if err != nil {
		logx.Get().WithError(err).Error("vm runtime error")
	}
	return err
}

func (vm *VM) currentFrame() *CallFrame { return vm.frames[len(vm.frames)-1] }

func (vm *VM) push(v objects.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() objects.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) objects.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) readByte() byte {
	frame := vm.currentFrame()
	b := frame.Chunk.Code[frame.IP]
	frame.IP++
	return b
}

// readShort reads the two bytes immediately following the opcode —
// offsets ip and ip+1 relative to the not-yet-advanced instruction
// pointer — then advances ip by 2. (A prior version of this VM read
// ip+1/ip+2 after already advancing by 2, landing one byte past the
// jump target; fixed here.)
func (vm *VM) readShort() uint16 {
	frame := vm.currentFrame()
	hi := frame.Chunk.Code[frame.IP]
	lo := frame.Chunk.Code[frame.IP+1]
	frame.IP += 2
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant() objects.Value {
	idx := vm.readByte()
	return vm.currentFrame().Chunk.Constants[idx]
}

func (vm *VM) currentLine() int {
	frame := vm.currentFrame()
	if frame.IP == 0 {
		return frame.Chunk.Lines[0]
	}
	return frame.Chunk.Lines[frame.IP-1]
}

func (vm *VM) runtimeError(format string, args ...interface{}) error {
	return &RuntimeError{Line: vm.currentLine(), Message: fmt.Sprintf(format, args...)}
}

func (vm *VM) run() error {
	for {
		if logx.Get().IsLevelEnabled(logrus.DebugLevel) {
			vm.traceInstruction()
		}
		op := OpCode(vm.readByte())
		switch op {
		case OpConstant:
			vm.push(vm.readConstant())

		case OpNil:
			vm.push(objects.Nil{})
		case OpTrue:
			vm.push(objects.Bool(true))
		case OpFalse:
			vm.push(objects.Bool(false))
		case OpPop:
			vm.pop()

		case OpGetLocal:
			slot := vm.readByte()
			vm.push(vm.stack[vm.currentFrame().Base+int(slot)])
		case OpSetLocal:
			slot := vm.readByte()
			vm.stack[vm.currentFrame().Base+int(slot)] = vm.peek(0)

		case OpGetGlobal:
			name := string(vm.readConstant().(objects.String))
			val, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(val)

		case OpDefineGlobal:
			name := string(vm.readConstant().(objects.String))
			vm.globals[name] = vm.pop()

		case OpSetGlobal:
			name := string(vm.readConstant().(objects.String))
			// Assignment requires the global to already exist — unlike
			// OpDefineGlobal, this never creates a new binding. (A
			// prior version inverted this: it errored when the name
			// was new and silently redefined existing globals; fixed
			// here to match the book's semantics.)
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.globals[name] = vm.peek(0)

		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(objects.Bool(objects.Equal(a, b)))
		case OpGreater:
			if err := vm.binaryNumericBool(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case OpLess:
			if err := vm.binaryNumericBool(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}
		case OpNot:
			vm.push(objects.Bool(!objects.IsTruthy(vm.pop())))
		case OpNegate:
			n, ok := vm.peek(0).(objects.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case OpSubtract:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case OpMultiply:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case OpDivide:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case OpPrint:
			fmt.Fprintln(vm.out, objects.Display(vm.pop()))

		case OpJump:
			offset := vm.readShort()
			vm.currentFrame().IP += int(offset)
		case OpJumpIfFalse:
			offset := vm.readShort()
			if !objects.IsTruthy(vm.peek(0)) {
				vm.currentFrame().IP += int(offset)
			}
		case OpLoop:
			offset := vm.readShort()
			vm.currentFrame().IP -= int(offset)

		case OpReturn:
			return nil

		default:
			return vm.runtimeError("unknown opcode %d", byte(op))
		}
	}
}

func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch av := a.(type) {
	case objects.Number:
		bv, ok := b.(objects.Number)
		if !ok {
			return vm.runtimeError("Operands must be two numbers or two strings.")
		}
		vm.pop()
		vm.pop()
		vm.push(av + bv)
		return nil
	case objects.String:
		bv, ok := b.(objects.String)
		if !ok {
			return vm.runtimeError("Operands must be two numbers or two strings.")
		}
		vm.pop()
		vm.pop()
		vm.push(av + bv)
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

func (vm *VM) binaryNumeric(f func(a, b float64) float64) error {
	b, ok1 := vm.peek(0).(objects.Number)
	a, ok2 := vm.peek(1).(objects.Number)
	if !ok1 || !ok2 {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(objects.Number(f(float64(a), float64(b))))
	return nil
}

// traceInstruction logs the instruction about to execute, at the
// frame's current IP. A prior version of this trace computed the
// printed offset as `ip - len(code)`, which underflows to a huge
// unsigned value once ip no longer trails the chunk length; fixed here
// to print the IP itself, same convention Chunk.Disassemble uses.
func (vm *VM) traceInstruction() {
	frame := vm.currentFrame()
	var b strings.Builder
	frame.Chunk.disassembleInstruction(&b, frame.IP)
	logx.Get().Debug(strings.TrimSuffix(b.String(), "\n"))
}

func (vm *VM) binaryNumericBool(f func(a, b float64) bool) error {
	b, ok1 := vm.peek(0).(objects.Number)
	a, ok2 := vm.peek(1).(objects.Number)
	if !ok1 || !ok2 {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(objects.Bool(f(float64(a), float64(b))))
	return nil
}
