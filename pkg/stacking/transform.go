// Package stacking assigns a stack slot to every Pseudo operand.
// It returns the rewritten code together with the frame size the legalize
// pass needs for its AllocateStack instruction.
package stacking

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/asm"
)

// TransformProgram replaces pseudos in the program's function.
// The returned int64 is the frame size in bytes.
func TransformProgram(prog *asm.Program) (*asm.Program, int64) {
	fn, size := TransformFunction(prog.Function)
	return &asm.Program{Function: fn}, size
}

// TransformFunction replaces pseudos in fn without modifying it.
// Each call uses its own slot map, so offsets never carry over between
// functions or compilations.
func TransformFunction(fn asm.Function) (asm.Function, int64) {
	slots := newSlotAllocator()

	result := asm.Function{
		Name: fn.Name,
		Code: make([]asm.Instruction, len(fn.Code)),
	}
	for i, inst := range fn.Code {
		result.Code[i] = replaceInstruction(inst, slots)
	}
	return result, slots.FrameSize()
}

func replaceInstruction(inst asm.Instruction, slots *slotAllocator) asm.Instruction {
	switch i := inst.(type) {
	case asm.Mov:
		// Source before destination, so slots follow evaluation order
		src := replaceOperand(i.Src, slots)
		dst := replaceOperand(i.Dst, slots)
		return asm.Mov{Src: src, Dst: dst}
	case asm.Unary:
		return asm.Unary{Op: i.Op, Operand: replaceOperand(i.Operand, slots)}
	case asm.AllocateStack, asm.Ret:
		return inst
	default:
		panic(fmt.Sprintf("stacking: unexpected instruction %T", inst))
	}
}

func replaceOperand(op asm.Operand, slots *slotAllocator) asm.Operand {
	if p, ok := op.(asm.Pseudo); ok {
		return slots.Slot(p.Name)
	}
	return op
}
