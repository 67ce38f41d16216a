package tacky

import (
	"fmt"
	"io"
)

// Printer outputs Tacky IR in a readable, one-instruction-per-line form
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Tacky printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints the program's function
func (p *Printer) PrintProgram(prog *Program) {
	p.PrintFunction(prog.Function)
}

// PrintFunction prints a function header followed by its instructions
func (p *Printer) PrintFunction(fn Function) {
	fmt.Fprintf(p.w, "%s() {\n", fn.Name)
	for _, inst := range fn.Body {
		fmt.Fprintf(p.w, "  %s\n", FormatInstruction(inst))
	}
	fmt.Fprintln(p.w, "}")
}

// FormatInstruction renders a single instruction
func FormatInstruction(inst Instruction) string {
	switch i := inst.(type) {
	case Return:
		return fmt.Sprintf("return %s", FormatVal(i.Val))
	case Unary:
		return fmt.Sprintf("%s = %s %s", FormatVal(i.Dst), i.Op, FormatVal(i.Src))
	default:
		return fmt.Sprintf("<unknown instruction %T>", inst)
	}
}

// FormatVal renders an operand
func FormatVal(v Val) string {
	switch val := v.(type) {
	case Constant:
		return fmt.Sprintf("%d", val.Value)
	case Var:
		return val.Name
	default:
		return fmt.Sprintf("<unknown value %T>", v)
	}
}
