// Package legalize rewrites pseudo-assembly into forms the x86-64
// instruction set accepts, and opens the stack frame.
//
// mov cannot take two memory operands, so a stack-to-stack move is split
// into a load into the R10 scratch register and a store from it.
package legalize

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/asm"
)

// scratch holds values while a memory-to-memory move is split.
// Nothing else reads or writes it.
var scratch = asm.Register{Reg: asm.R10}

// TransformProgram legalizes the program's function
func TransformProgram(prog *asm.Program, frameSize int64) *asm.Program {
	return &asm.Program{Function: TransformFunction(prog.Function, frameSize)}
}

// TransformFunction prepends AllocateStack(frameSize) and splits illegal moves
func TransformFunction(fn asm.Function, frameSize int64) asm.Function {
	code := make([]asm.Instruction, 0, len(fn.Code)+1)
	code = append(code, asm.AllocateStack{Size: frameSize})
	for _, inst := range fn.Code {
		code = append(code, fixInstruction(inst)...)
	}
	return asm.Function{Name: fn.Name, Code: code}
}

func fixInstruction(inst asm.Instruction) []asm.Instruction {
	switch i := inst.(type) {
	case asm.Mov:
		if isStack(i.Src) && isStack(i.Dst) {
			return []asm.Instruction{
				asm.Mov{Src: i.Src, Dst: scratch},
				asm.Mov{Src: scratch, Dst: i.Dst},
			}
		}
		return []asm.Instruction{i}
	case asm.Unary, asm.AllocateStack, asm.Ret:
		return []asm.Instruction{inst}
	default:
		panic(fmt.Sprintf("legalize: unexpected instruction %T", inst))
	}
}

func isStack(op asm.Operand) bool {
	_, ok := op.(asm.Stack)
	return ok
}
