// Package tacky defines the three-address intermediate representation that
// sits between the C AST and instruction selection. Each instruction applies
// at most one operator to constant or named operands and names its result
// explicitly.
package tacky

// Val is an instruction operand
type Val interface {
	implVal()
}

// Instruction is the interface for Tacky instructions
type Instruction interface {
	implInstruction()
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	Negate UnaryOp = iota
	Complement
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "Negate"
	case Complement:
		return "Complement"
	}
	return "?"
}

// Constant is an integer immediate value
type Constant struct {
	Value int64
}

// Var is a named temporary
type Var struct {
	Name string
}

// Return returns Val from the function
type Return struct {
	Val Val
}

// Unary computes Dst = Op Src
type Unary struct {
	Op  UnaryOp
	Src Val
	Dst Val
}

// Function is a named instruction sequence
type Function struct {
	Name string
	Body []Instruction
}

// Program is the IR for one translation unit
type Program struct {
	Function Function
}

func (Constant) implVal() {}
func (Var) implVal()      {}

func (Return) implInstruction() {}
func (Unary) implInstruction()  {}
