// Package tackygen lowers the C AST to Tacky IR.
// Expressions are flattened in post-order: operands are evaluated first, and
// every operator application writes a fresh temporary.
package tackygen

import (
	"fmt"

	"github.com/raymyers/tacky-cc/pkg/cabs"
	"github.com/raymyers/tacky-cc/pkg/tacky"
)

// TransformProgram lowers a parsed program to Tacky.
// Temporary numbering starts over on every call.
func TransformProgram(prog *cabs.Program) *tacky.Program {
	return &tacky.Program{Function: TransformFunction(prog.Function)}
}

// TransformFunction lowers a single function definition
func TransformFunction(fn cabs.FunDef) tacky.Function {
	ctx := &genContext{names: newTempNamer()}
	ctx.emitStmt(fn.Body)
	return tacky.Function{Name: fn.Name, Body: ctx.body}
}

// genContext holds state during lowering of one function
type genContext struct {
	names *tempNamer
	body  []tacky.Instruction
}

func (ctx *genContext) emit(inst tacky.Instruction) {
	ctx.body = append(ctx.body, inst)
}

func (ctx *genContext) emitStmt(stmt cabs.Stmt) {
	switch s := stmt.(type) {
	case cabs.Return:
		val := ctx.emitExpr(s.Expr)
		ctx.emit(tacky.Return{Val: val})
	default:
		panic(fmt.Sprintf("tackygen: unexpected statement %T", stmt))
	}
}

// emitExpr appends the instructions computing expr and returns its value
func (ctx *genContext) emitExpr(expr cabs.Expr) tacky.Val {
	switch e := expr.(type) {
	case cabs.Constant:
		return tacky.Constant{Value: e.Value}
	case cabs.Unary:
		src := ctx.emitExpr(e.Expr)
		dst := ctx.names.Fresh()
		ctx.emit(tacky.Unary{Op: convertUnaryOp(e.Op), Src: src, Dst: dst})
		return dst
	default:
		panic(fmt.Sprintf("tackygen: unexpected expression %T", expr))
	}
}

func convertUnaryOp(op cabs.UnaryOp) tacky.UnaryOp {
	switch op {
	case cabs.OpNeg:
		return tacky.Negate
	case cabs.OpBitNot:
		return tacky.Complement
	}
	panic(fmt.Sprintf("tackygen: unexpected unary operator %v", op))
}
