package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the AST as C source
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	p.printFunDef(prog.Function)
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("    ", p.indent))
}

func (p *Printer) printFunDef(f FunDef) {
	fmt.Fprintf(p.w, "int %s(void)\n{\n", f.Name)
	p.indent++
	p.printStmt(f.Body)
	p.indent--
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStmt(stmt Stmt) {
	p.writeIndent()
	switch s := stmt.(type) {
	case Return:
		fmt.Fprintf(p.w, "return %s;\n", ExprString(s.Expr))
	default:
		fmt.Fprintf(p.w, "/* unknown statement %T */\n", stmt)
	}
}

// ExprString renders an expression with every unary operand parenthesized,
// so nesting is visible: -~5 prints as -(~(5)).
func ExprString(expr Expr) string {
	switch e := expr.(type) {
	case Constant:
		return fmt.Sprintf("%d", e.Value)
	case Unary:
		return fmt.Sprintf("%s(%s)", e.Op, ExprString(e.Expr))
	default:
		return fmt.Sprintf("/* unknown expression %T */", expr)
	}
}
