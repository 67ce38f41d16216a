package asm

import (
	"fmt"
	"io"
)

// DumpProgram writes the program in constructor notation, one instruction
// per line. Unlike the Printer it accepts Pseudo operands, so it can show
// the output of instruction selection.
func DumpProgram(w io.Writer, prog *Program) {
	fmt.Fprintf(w, "%s:\n", prog.Function.Name)
	for _, inst := range prog.Function.Code {
		fmt.Fprintf(w, "  %s\n", FormatInstruction(inst))
	}
}

// FormatInstruction renders an instruction in constructor notation
func FormatInstruction(inst Instruction) string {
	switch i := inst.(type) {
	case Mov:
		return fmt.Sprintf("Mov(%s, %s)", FormatOperand(i.Src), FormatOperand(i.Dst))
	case Unary:
		return fmt.Sprintf("Unary(%s, %s)", i.Op, FormatOperand(i.Operand))
	case AllocateStack:
		return fmt.Sprintf("AllocateStack(%d)", i.Size)
	case Ret:
		return "Ret"
	}
	return fmt.Sprintf("<unknown %T>", inst)
}

// FormatOperand renders an operand in constructor notation
func FormatOperand(op Operand) string {
	switch o := op.(type) {
	case Imm:
		return fmt.Sprintf("Imm(%d)", o.Value)
	case Register:
		return fmt.Sprintf("Reg(%s)", o.Reg)
	case Pseudo:
		return fmt.Sprintf("Pseudo(%s)", o.Name)
	case Stack:
		return fmt.Sprintf("Stack(%d)", o.Offset)
	}
	return fmt.Sprintf("<unknown %T>", op)
}
