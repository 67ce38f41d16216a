// Package asmgen selects x86-64 instructions for Tacky IR.
// Tacky variables become Pseudo operands; the stacking pass later assigns
// them stack slots.
package asmgen

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/asm"
	"github.com/raymyers/tacky-cc/pkg/tacky"
)

// TransformProgram transforms a Tacky program to pseudo-assembly
func TransformProgram(prog *tacky.Program) *asm.Program {
	return &asm.Program{Function: TransformFunction(prog.Function)}
}

// TransformFunction transforms a single Tacky function
func TransformFunction(fn tacky.Function) asm.Function {
	result := asm.Function{
		Name: fn.Name,
		Code: make([]asm.Instruction, 0, 2*len(fn.Body)),
	}
	for _, inst := range fn.Body {
		result.Code = append(result.Code, translateInstruction(inst)...)
	}
	return result
}

// translateInstruction expands one Tacky instruction into assembly
func translateInstruction(inst tacky.Instruction) []asm.Instruction {
	switch i := inst.(type) {
	case tacky.Return:
		return []asm.Instruction{
			asm.Mov{Src: convertVal(i.Val), Dst: asm.Register{Reg: asm.AX}},
			asm.Ret{},
		}
	case tacky.Unary:
		// The machine operator works in place, so copy the source into
		// the destination first.
		dst := convertVal(i.Dst)
		return []asm.Instruction{
			asm.Mov{Src: convertVal(i.Src), Dst: dst},
			asm.Unary{Op: convertUnaryOp(i.Op), Operand: dst},
		}
	default:
		panic(fmt.Sprintf("asmgen: unexpected instruction %T", inst))
	}
}

func convertVal(v tacky.Val) asm.Operand {
	switch val := v.(type) {
	case tacky.Constant:
		return asm.Imm{Value: val.Value}
	case tacky.Var:
		return asm.Pseudo{Name: val.Name}
	default:
		panic(fmt.Sprintf("asmgen: unexpected value %T", v))
	}
}

func convertUnaryOp(op tacky.UnaryOp) asm.UnaryOp {
	switch op {
	case tacky.Negate:
		return asm.Neg
	case tacky.Complement:
		return asm.Not
	}
	panic(fmt.Sprintf("asmgen: unexpected unary operator %v", op))
}
