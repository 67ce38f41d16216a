package legalize

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/asm"
)

// ViolationError describes an instruction that breaks an emission invariant
type ViolationError struct {
	Function string
	Index    int
	Reason   string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: instruction %d: %s", e.Function, e.Index, e.Reason)
}

// Check verifies that fn is ready for emission: it starts with the only
// AllocateStack, has no Pseudo operands, and no Mov between two stack slots.
func Check(fn asm.Function) error {
	fail := func(idx int, format string, args ...any) error {
		return &ViolationError{Function: fn.Name, Index: idx, Reason: fmt.Sprintf(format, args...)}
	}

	if len(fn.Code) == 0 {
		return fail(0, "empty function")
	}
	if _, ok := fn.Code[0].(asm.AllocateStack); !ok {
		return fail(0, "first instruction is %s, want AllocateStack", asm.FormatInstruction(fn.Code[0]))
	}

	for idx, inst := range fn.Code {
		switch i := inst.(type) {
		case asm.AllocateStack:
			if idx != 0 {
				return fail(idx, "extra %s", asm.FormatInstruction(i))
			}
		case asm.Mov:
			if isPseudo(i.Src) || isPseudo(i.Dst) {
				return fail(idx, "unresolved pseudo in %s", asm.FormatInstruction(i))
			}
			if isStack(i.Src) && isStack(i.Dst) {
				return fail(idx, "memory-to-memory %s", asm.FormatInstruction(i))
			}
		case asm.Unary:
			if isPseudo(i.Operand) {
				return fail(idx, "unresolved pseudo in %s", asm.FormatInstruction(i))
			}
		}
	}
	return nil
}

func isPseudo(op asm.Operand) bool {
	_, ok := op.(asm.Pseudo)
	return ok
}
