package jack

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Segment is an addressable storage region of the VM.
type Segment uint8

const (
	SegConstant Segment = iota
	SegArgument
	SegLocal
	SegStatic
	SegThis
	SegThat
	SegPointer
	SegTemp
)

func (s Segment) String() string {
	switch s {
	case SegConstant:
		return "constant"
	case SegArgument:
		return "argument"
	case SegLocal:
		return "local"
	case SegStatic:
		return "static"
	case SegThis:
		return "this"
	case SegThat:
		return "that"
	case SegPointer:
		return "pointer"
	case SegTemp:
		return "temp"
	}
	return ""
}

// Opcode is the operation of a VM instruction.
type Opcode uint8

const (
	OpPush Opcode = iota
	OpPop
	OpAdd
	OpSub
	OpNeg
	OpEq
	OpGt
	OpLt
	OpAnd
	OpOr
	OpNot
	OpLabel
	OpGoto
	OpIfGoto
	OpFunction
	OpCall
	OpReturn
)

func (op Opcode) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpNeg:
		return "neg"
	case OpEq:
		return "eq"
	case OpGt:
		return "gt"
	case OpLt:
		return "lt"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpLabel:
		return "label"
	case OpGoto:
		return "goto"
	case OpIfGoto:
		return "if-goto"
	case OpFunction:
		return "function"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	}
	return ""
}

// Instruction is a single VM command. Arg1 holds a segment, a label or a
// function name and Arg2 an index or a count, depending on Op.
type Instruction struct {
	Op   Opcode
	Arg1 string
	Arg2 int
}

func (in Instruction) String() string {
	switch in.Op {
	case OpPush, OpPop, OpFunction, OpCall:
		return in.Op.String() + " " + in.Arg1 + " " + strconv.Itoa(in.Arg2)
	case OpLabel, OpGoto, OpIfGoto:
		return in.Op.String() + " " + in.Arg1
	default:
		return in.Op.String()
	}
}

// Library routines that stand in for operations the VM lacks.
const (
	mathMultiply     = "Math.multiply"
	mathDivide       = "Math.divide"
	memoryAlloc      = "Memory.alloc"
	stringNew        = "String.new"
	stringAppendChar = "String.appendChar"
)

// VMWriter collects emitted instructions in order. Instructions are only ever
// appended.
type VMWriter struct {
	instructions []Instruction
}

// NewVMWriter creates an empty writer
func NewVMWriter() *VMWriter {
	return new(VMWriter)
}

func (w *VMWriter) emit(op Opcode, arg1 string, arg2 int) {
	w.instructions = append(w.instructions, Instruction{op, arg1, arg2})
}

func (w *VMWriter) WritePush(segment Segment, index int) {
	w.emit(OpPush, segment.String(), index)
}

func (w *VMWriter) WritePop(segment Segment, index int) {
	w.emit(OpPop, segment.String(), index)
}

// WriteCommand emits an instruction that takes no operands.
func (w *VMWriter) WriteCommand(op Opcode) {
	w.emit(op, "", 0)
}

// WriteArithmetic emits the command for a binary operator symbol. The VM has no
// multiplication or division, those become calls into the Math library.
func (w *VMWriter) WriteArithmetic(op string) error {
	switch op {
	case "+":
		w.WriteCommand(OpAdd)
	case "-":
		w.WriteCommand(OpSub)
	case "&":
		w.WriteCommand(OpAnd)
	case "|":
		w.WriteCommand(OpOr)
	case "<":
		w.WriteCommand(OpLt)
	case ">":
		w.WriteCommand(OpGt)
	case "=":
		w.WriteCommand(OpEq)
	case "*":
		w.WriteCall(mathMultiply, 2)
	case "/":
		w.WriteCall(mathDivide, 2)
	default:
		return fmt.Errorf("unknown operator %q", op)
	}
	return nil
}

// WriteUnary emits the command for a unary operator symbol.
func (w *VMWriter) WriteUnary(op string) error {
	switch op {
	case "-":
		w.WriteCommand(OpNeg)
	case "~":
		w.WriteCommand(OpNot)
	default:
		return fmt.Errorf("unknown unary operator %q", op)
	}
	return nil
}

// WriteString allocates a string object and appends the constant to it one
// character at a time, leaving the object on the stack.
func (w *VMWriter) WriteString(s string) {
	chars := []rune(s)
	w.WritePush(SegConstant, len(chars))
	w.WriteCall(stringNew, 1)
	for _, c := range chars {
		w.WritePush(SegConstant, int(c))
		w.WriteCall(stringAppendChar, 2)
	}
}

func (w *VMWriter) WriteLabel(label string) {
	w.emit(OpLabel, label, 0)
}

func (w *VMWriter) WriteGoto(label string) {
	w.emit(OpGoto, label, 0)
}

func (w *VMWriter) WriteIf(label string) {
	w.emit(OpIfGoto, label, 0)
}

func (w *VMWriter) WriteCall(name string, nArgs int) {
	w.emit(OpCall, name, nArgs)
}

func (w *VMWriter) WriteFunction(name string, nLocals int) {
	w.emit(OpFunction, name, nLocals)
}

func (w *VMWriter) WriteReturn() {
	w.WriteCommand(OpReturn)
}

// Instructions returns everything emitted so far
func (w *VMWriter) Instructions() []Instruction {
	return w.instructions
}

// WriteTo writes the instructions as text, one per line.
func (w *VMWriter) WriteTo(out io.Writer) (int64, error) {
	return WriteInstructions(out, w.instructions)
}

// WriteInstructions writes the given instructions as text, one per line.
func WriteInstructions(out io.Writer, instructions []Instruction) (int64, error) {
	buf := bufio.NewWriter(out)
	var n int64
	for _, in := range instructions {
		m, err := buf.WriteString(in.String() + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, buf.Flush()
}
