package asmgen

import (
	"reflect"
	"testing"

	"github.com/raymyers/tacky-cc/pkg/asm"
	"github.com/raymyers/tacky-cc/pkg/tacky"
)

func TestTransformReturnConstant(t *testing.T) {
	prog := &tacky.Program{Function: tacky.Function{
		Name: "main",
		Body: []tacky.Instruction{tacky.Return{Val: tacky.Constant{Value: 2}}},
	}}

	got := TransformProgram(prog)

	want := &asm.Program{Function: asm.Function{
		Name: "main",
		Code: []asm.Instruction{
			asm.Mov{Src: asm.Imm{Value: 2}, Dst: asm.Register{Reg: asm.AX}},
			asm.Ret{},
		},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestTransformUnary(t *testing.T) {
	tests := []struct {
		name string
		inst tacky.Instruction
		want []asm.Instruction
	}{
		{
			name: "complement of constant",
			inst: tacky.Unary{Op: tacky.Complement, Src: tacky.Constant{Value: 5}, Dst: tacky.Var{Name: "tmp.1"}},
			want: []asm.Instruction{
				asm.Mov{Src: asm.Imm{Value: 5}, Dst: asm.Pseudo{Name: "tmp.1"}},
				asm.Unary{Op: asm.Not, Operand: asm.Pseudo{Name: "tmp.1"}},
			},
		},
		{
			name: "negate of temporary",
			inst: tacky.Unary{Op: tacky.Negate, Src: tacky.Var{Name: "tmp.1"}, Dst: tacky.Var{Name: "tmp.2"}},
			want: []asm.Instruction{
				asm.Mov{Src: asm.Pseudo{Name: "tmp.1"}, Dst: asm.Pseudo{Name: "tmp.2"}},
				asm.Unary{Op: asm.Neg, Operand: asm.Pseudo{Name: "tmp.2"}},
			},
		},
		{
			name: "return temporary",
			inst: tacky.Return{Val: tacky.Var{Name: "tmp.2"}},
			want: []asm.Instruction{
				asm.Mov{Src: asm.Pseudo{Name: "tmp.2"}, Dst: asm.Register{Reg: asm.AX}},
				asm.Ret{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateInstruction(tt.inst)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTransformPreservesOrder(t *testing.T) {
	fn := tacky.Function{
		Name: "f",
		Body: []tacky.Instruction{
			tacky.Unary{Op: tacky.Complement, Src: tacky.Constant{Value: 5}, Dst: tacky.Var{Name: "tmp.1"}},
			tacky.Unary{Op: tacky.Negate, Src: tacky.Var{Name: "tmp.1"}, Dst: tacky.Var{Name: "tmp.2"}},
			tacky.Return{Val: tacky.Var{Name: "tmp.2"}},
		},
	}

	got := TransformFunction(fn)

	if got.Name != "f" {
		t.Errorf("name = %q, want f", got.Name)
	}
	if len(got.Code) != 6 {
		t.Fatalf("got %d instructions, want 6", len(got.Code))
	}
	if _, ok := got.Code[5].(asm.Ret); !ok {
		t.Errorf("last instruction = %T, want asm.Ret", got.Code[5])
	}
	mov := got.Code[2].(asm.Mov)
	if mov.Src != (asm.Pseudo{Name: "tmp.1"}) || mov.Dst != (asm.Pseudo{Name: "tmp.2"}) {
		t.Errorf("third instruction = %#v, want pseudo-to-pseudo move", mov)
	}
}
