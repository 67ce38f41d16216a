// Package cabs defines the abstract syntax tree produced by the parser.
// Each syntactic category is a closed set of node types tied together by
// unexported marker methods.
package cabs

// Node is the base interface for all AST nodes
type Node interface {
	implCabsNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implCabsExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implCabsStmt()
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -
	OpBitNot                // ~
)

func (op UnaryOp) String() string {
	names := []string{"-", "~"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Constant represents an integer constant
type Constant struct {
	Value int64
}

// Unary represents a prefix unary expression
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

// Return represents a return statement
type Return struct {
	Expr Expr
}

// FunDef represents a parameterless int function definition
type FunDef struct {
	Name string
	Body Stmt
}

// Program is a translation unit holding exactly one function
type Program struct {
	Function FunDef
}

// Marker methods for interface implementation
func (Constant) implCabsNode() {}
func (Constant) implCabsExpr() {}

func (Unary) implCabsNode() {}
func (Unary) implCabsExpr() {}

func (Return) implCabsNode() {}
func (Return) implCabsStmt() {}

func (FunDef) implCabsNode() {}
