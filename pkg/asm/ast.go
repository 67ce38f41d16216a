// Package asm defines the x86-64 pseudo-assembly representation.
// Instruction selection produces it with symbolic Pseudo operands; the
// stacking and legalize passes turn it into code the printer can emit.
package asm

import "fmt"

// Reg is a physical register
type Reg int

const (
	AX  Reg = iota // return value
	R10            // scratch for legalization
)

func (r Reg) String() string {
	switch r {
	case AX:
		return "AX"
	case R10:
		return "R10"
	}
	return fmt.Sprintf("Reg%d", int(r))
}

// UnaryOp is a one-operand arithmetic instruction
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "Neg"
	case Not:
		return "Not"
	}
	return "?"
}

// --- Operands ---

// Operand is the interface for instruction operands
type Operand interface {
	implOperand()
}

// Imm is an immediate integer
type Imm struct {
	Value int64
}

// Register is a physical register operand
type Register struct {
	Reg Reg
}

// Pseudo is a symbolic location not yet assigned to storage
type Pseudo struct {
	Name string
}

// Stack is a slot at Offset bytes from the frame base pointer
type Stack struct {
	Offset int64
}

func (Imm) implOperand()      {}
func (Register) implOperand() {}
func (Pseudo) implOperand()   {}
func (Stack) implOperand()    {}

// --- Instructions ---

// Instruction is the interface for assembly instructions
type Instruction interface {
	implInstruction()
}

// Mov copies Src to Dst
type Mov struct {
	Src, Dst Operand
}

// Unary applies Op to Operand in place
type Unary struct {
	Op      UnaryOp
	Operand Operand
}

// AllocateStack reserves Size bytes below the frame base
type AllocateStack struct {
	Size int64
}

// Ret tears down the frame and returns
type Ret struct{}

func (Mov) implInstruction()           {}
func (Unary) implInstruction()         {}
func (AllocateStack) implInstruction() {}
func (Ret) implInstruction()           {}

// Function is a named instruction sequence
type Function struct {
	Name string
	Code []Instruction
}

// Program is the assembly for one translation unit
type Program struct {
	Function Function
}
