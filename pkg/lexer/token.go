package lexer

import "fmt"

// Kind identifies the type of a token
type Kind int

const (
	// Special tokens
	EOF Kind = iota

	// Literals
	Identifier  // main, foo, x
	IntConstant // 42

	// Keywords
	KwInt    // int
	KwVoid   // void
	KwReturn // return

	// Operators
	Minus     // -
	Tilde     // ~
	Decrement // --

	// Delimiters
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Semicolon // ;
)

// descriptors are the fixed names used for each kind in diagnostics
var descriptors = map[Kind]string{
	EOF:         "eof",
	Identifier:  "identifier",
	IntConstant: "integer constant",
	KwInt:       "int",
	KwVoid:      "void",
	KwReturn:    "return",
	Minus:       "minus",
	Tilde:       "bitwise complement",
	Decrement:   "decrement",
	LParen:      "open parenthesis",
	RParen:      "close parenthesis",
	LBrace:      "open brace",
	RBrace:      "close brace",
	Semicolon:   "semicolon",
}

// Descriptor returns the human-readable name of the kind
func (k Kind) Descriptor() string {
	if name, ok := descriptors[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) String() string {
	return k.Descriptor()
}

// Token represents a lexical token.
// ColumnEnd is exclusive, so a token spans [ColumnStart, ColumnEnd).
type Token struct {
	Kind        Kind
	Literal     string
	Value       int64 // only set for IntConstant
	Line        int
	ColumnStart int
	ColumnEnd   int
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("identifier(%s)", t.Literal)
	case IntConstant:
		return fmt.Sprintf("integer(%d)", t.Value)
	case EOF:
		return "EOF"
	}
	return t.Literal
}

// keywords maps keyword strings to token kinds
var keywords = map[string]Kind{
	"int":    KwInt,
	"void":   KwVoid,
	"return": KwReturn,
}

// LookupIdent returns the keyword kind for a word, or Identifier
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}
