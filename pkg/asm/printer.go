package asm

import (
	"bufio"
	"fmt"
	"io"
)

// Printer outputs x86-64 assembly in GNU as (AT&T) syntax
type Printer struct {
	w      *bufio.Writer
	target Target
}

// NewPrinter creates a new assembly printer for the given target
func NewPrinter(w io.Writer, target Target) *Printer {
	return &Printer{w: bufio.NewWriter(w), target: target}
}

// PrintProgram outputs an entire program. The first write error, if any, is
// returned unchanged.
func (p *Printer) PrintProgram(prog *Program) error {
	p.printFunction(prog.Function)
	if p.target == TargetLinux {
		fmt.Fprintf(p.w, "\t.section\t.note.GNU-stack,\"\",@progbits\n")
	}
	return p.w.Flush()
}

// symbolName returns the symbol name with platform-appropriate prefix
func (p *Printer) symbolName(name string) string {
	if p.target == TargetDarwin {
		return "_" + name
	}
	return name
}

func (p *Printer) printFunction(f Function) {
	name := p.symbolName(f.Name)
	fmt.Fprintf(p.w, "\t.globl\t%s\n", name)
	fmt.Fprintf(p.w, "%s:\n", name)

	// Prologue: save the caller's frame base and start ours
	fmt.Fprintf(p.w, "\tpushq\t%%rbp\n")
	fmt.Fprintf(p.w, "\tmovq\t%%rsp, %%rbp\n")

	for _, inst := range f.Code {
		p.printInstruction(inst)
	}
}

func (p *Printer) printInstruction(inst Instruction) {
	switch i := inst.(type) {
	case Mov:
		fmt.Fprintf(p.w, "\tmovl\t%s, %s\n", operandString(i.Src), operandString(i.Dst))
	case Unary:
		fmt.Fprintf(p.w, "\t%s\t%s\n", unaryMnemonic(i.Op), operandString(i.Operand))
	case AllocateStack:
		fmt.Fprintf(p.w, "\tsubq\t$%d, %%rsp\n", i.Size)
	case Ret:
		fmt.Fprintf(p.w, "\tmovq\t%%rbp, %%rsp\n")
		fmt.Fprintf(p.w, "\tpopq\t%%rbp\n")
		fmt.Fprintf(p.w, "\tret\n")
	default:
		panic(fmt.Sprintf("asm: cannot emit instruction %T", inst))
	}
}

func unaryMnemonic(op UnaryOp) string {
	switch op {
	case Neg:
		return "negl"
	case Not:
		return "notl"
	}
	panic(fmt.Sprintf("asm: unknown unary operator %d", int(op)))
}

// regName32 returns the 32-bit register name
func regName32(r Reg) string {
	switch r {
	case AX:
		return "%eax"
	case R10:
		return "%r10d"
	}
	panic(fmt.Sprintf("asm: unknown register %d", int(r)))
}

func operandString(op Operand) string {
	switch o := op.(type) {
	case Imm:
		return fmt.Sprintf("$%d", o.Value)
	case Register:
		return regName32(o.Reg)
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	case Pseudo:
		// Stacking replaces every pseudo; one surviving to here is a compiler bug.
		panic(fmt.Sprintf("asm: pseudo operand %q reached emission", o.Name))
	default:
		panic(fmt.Sprintf("asm: unknown operand %T", op))
	}
}
