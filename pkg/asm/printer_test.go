package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func printOne(t *testing.T, inst Instruction) string {
	t.Helper()
	var buf bytes.Buffer
	p := NewPrinter(&buf, TargetLinux)
	p.printInstruction(inst)
	if err := p.w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.String()
}

func TestPrintInstructions(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"mov imm to eax", Mov{Src: Imm{Value: 2}, Dst: Register{Reg: AX}}, "\tmovl\t$2, %eax\n"},
		{"mov negative imm", Mov{Src: Imm{Value: -7}, Dst: Stack{Offset: -4}}, "\tmovl\t$-7, -4(%rbp)\n"},
		{"mov stack to r10", Mov{Src: Stack{Offset: -4}, Dst: Register{Reg: R10}}, "\tmovl\t-4(%rbp), %r10d\n"},
		{"mov r10 to stack", Mov{Src: Register{Reg: R10}, Dst: Stack{Offset: -8}}, "\tmovl\t%r10d, -8(%rbp)\n"},
		{"neg", Unary{Op: Neg, Operand: Stack{Offset: -8}}, "\tnegl\t-8(%rbp)\n"},
		{"not", Unary{Op: Not, Operand: Register{Reg: AX}}, "\tnotl\t%eax\n"},
		{"allocate", AllocateStack{Size: 16}, "\tsubq\t$16, %rsp\n"},
		{"allocate zero", AllocateStack{Size: 0}, "\tsubq\t$0, %rsp\n"},
		{"ret", Ret{}, "\tmovq\t%rbp, %rsp\n\tpopq\t%rbp\n\tret\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printOne(t, tt.inst); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintProgramLinux(t *testing.T) {
	prog := &Program{Function: Function{
		Name: "main",
		Code: []Instruction{
			AllocateStack{Size: 8},
			Mov{Src: Imm{Value: 5}, Dst: Stack{Offset: -4}},
			Unary{Op: Not, Operand: Stack{Offset: -4}},
			Mov{Src: Stack{Offset: -4}, Dst: Register{Reg: R10}},
			Mov{Src: Register{Reg: R10}, Dst: Stack{Offset: -8}},
			Unary{Op: Neg, Operand: Stack{Offset: -8}},
			Mov{Src: Stack{Offset: -8}, Dst: Register{Reg: AX}},
			Ret{},
		},
	}}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, TargetLinux).PrintProgram(prog); err != nil {
		t.Fatalf("PrintProgram: %v", err)
	}

	want := "\t.globl\tmain\n" +
		"main:\n" +
		"\tpushq\t%rbp\n" +
		"\tmovq\t%rsp, %rbp\n" +
		"\tsubq\t$8, %rsp\n" +
		"\tmovl\t$5, -4(%rbp)\n" +
		"\tnotl\t-4(%rbp)\n" +
		"\tmovl\t-4(%rbp), %r10d\n" +
		"\tmovl\t%r10d, -8(%rbp)\n" +
		"\tnegl\t-8(%rbp)\n" +
		"\tmovl\t-8(%rbp), %eax\n" +
		"\tmovq\t%rbp, %rsp\n" +
		"\tpopq\t%rbp\n" +
		"\tret\n" +
		"\t.section\t.note.GNU-stack,\"\",@progbits\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintProgramDarwin(t *testing.T) {
	prog := &Program{Function: Function{
		Name: "main",
		Code: []Instruction{AllocateStack{Size: 0}, Mov{Src: Imm{Value: 1}, Dst: Register{Reg: AX}}, Ret{}},
	}}

	var buf bytes.Buffer
	if err := NewPrinter(&buf, TargetDarwin).PrintProgram(prog); err != nil {
		t.Fatalf("PrintProgram: %v", err)
	}
	output := buf.String()

	if !strings.HasPrefix(output, "\t.globl\t_main\n_main:\n") {
		t.Errorf("expected underscore-prefixed symbol, got:\n%s", output)
	}
	if strings.Contains(output, ".note.GNU-stack") {
		t.Errorf("darwin output should not contain the GNU-stack note:\n%s", output)
	}
}

func TestPrintPseudoPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for pseudo operand")
		}
		if !strings.Contains(r.(string), "tmp.1") {
			t.Errorf("panic message should name the pseudo, got %v", r)
		}
	}()
	printOne(t, Unary{Op: Neg, Operand: Pseudo{Name: "tmp.1"}})
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestPrintProgramReturnsWriteError(t *testing.T) {
	prog := &Program{Function: Function{Name: "main", Code: []Instruction{Ret{}}}}

	err := NewPrinter(failingWriter{}, TargetLinux).PrintProgram(prog)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected errDiskFull, got %v", err)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		want    Target
		wantErr bool
	}{
		{"linux", TargetLinux, false},
		{"darwin", TargetDarwin, false},
		{"macos", TargetDarwin, false},
		{"windows", TargetLinux, true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTarget(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
