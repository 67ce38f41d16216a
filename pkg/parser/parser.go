// Package parser implements a recursive descent parser for the supported C subset.
//
// Grammar:
//
//	Program    := Function EOF
//	Function   := 'int' Identifier '(' 'void' ')' '{' Statement '}'
//	Statement  := 'return' Expression ';'
//	Expression := IntConstant | UnaryOp Expression | '(' Expression ')'
//	UnaryOp    := '-' | '~'
//
// Every production takes the parse state by value and returns the advanced
// state together with its node, or an error. The first error is passed
// straight back to the caller; there is no recovery.
package parser

import (
	"fmt"
	"strings"

	"github.com/raymyers/tacky-cc/pkg/cabs"
	"github.com/raymyers/tacky-cc/pkg/lexer"
)

// Error reports the token kinds acceptable at the failure point and the
// token actually found there
type Error struct {
	Expected []lexer.Kind
	Actual   lexer.Token
}

func (e *Error) Error() string {
	quoted := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		quoted[i] = "'" + kind.Descriptor() + "'"
	}
	return fmt.Sprintf("expected one of %s found '%s', at line %d, column %d",
		strings.Join(quoted, ", "), e.Actual.Kind.Descriptor(), e.Actual.Line, e.Actual.ColumnStart)
}

// expressionStart lists the kinds that may begin an expression
var expressionStart = []lexer.Kind{lexer.IntConstant, lexer.Minus, lexer.Tilde, lexer.LParen}

// state is the immutable parse position over a token slice
type state struct {
	tokens []lexer.Token
	pos    int
}

func (s state) peek() lexer.Token {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos]
	}
	// Ran off a token list without a trailing EOF: report a synthetic one
	// just past the last token.
	eof := lexer.Token{Kind: lexer.EOF, Line: 1, ColumnStart: 1, ColumnEnd: 1}
	if n := len(s.tokens); n > 0 {
		last := s.tokens[n-1]
		eof.Line, eof.ColumnStart, eof.ColumnEnd = last.Line, last.ColumnEnd, last.ColumnEnd
	}
	return eof
}

func (s state) advance() state {
	return state{tokens: s.tokens, pos: s.pos + 1}
}

func (s state) fail(expected ...lexer.Kind) *Error {
	return &Error{Expected: expected, Actual: s.peek()}
}

func (s state) expect(kind lexer.Kind) (lexer.Token, state, error) {
	tok := s.peek()
	if tok.Kind != kind {
		return tok, s, s.fail(kind)
	}
	return tok, s.advance(), nil
}

// ParseProgram parses a complete token stream into a program
func ParseProgram(tokens []lexer.Token) (*cabs.Program, error) {
	s := state{tokens: tokens}

	fn, s, err := parseFunction(s)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.expect(lexer.EOF); err != nil {
		return nil, err
	}
	return &cabs.Program{Function: fn}, nil
}

// ParseString lexes and parses source text in one step
func ParseString(input string) (*cabs.Program, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return ParseProgram(tokens)
}

func parseFunction(s state) (cabs.FunDef, state, error) {
	var fn cabs.FunDef
	var err error

	if _, s, err = s.expect(lexer.KwInt); err != nil {
		return fn, s, err
	}
	name, s, err := s.expect(lexer.Identifier)
	if err != nil {
		return fn, s, err
	}
	for _, kind := range []lexer.Kind{lexer.LParen, lexer.KwVoid, lexer.RParen, lexer.LBrace} {
		if _, s, err = s.expect(kind); err != nil {
			return fn, s, err
		}
	}
	body, s, err := parseStatement(s)
	if err != nil {
		return fn, s, err
	}
	if _, s, err = s.expect(lexer.RBrace); err != nil {
		return fn, s, err
	}

	fn.Name = name.Literal
	fn.Body = body
	return fn, s, nil
}

func parseStatement(s state) (cabs.Stmt, state, error) {
	var err error

	if _, s, err = s.expect(lexer.KwReturn); err != nil {
		return nil, s, err
	}
	expr, s, err := parseExpression(s)
	if err != nil {
		return nil, s, err
	}
	if _, s, err = s.expect(lexer.Semicolon); err != nil {
		return nil, s, err
	}
	return cabs.Return{Expr: expr}, s, nil
}

func parseExpression(s state) (cabs.Expr, state, error) {
	tok := s.peek()

	switch tok.Kind {
	case lexer.IntConstant:
		return cabs.Constant{Value: tok.Value}, s.advance(), nil

	case lexer.Minus, lexer.Tilde:
		op := cabs.OpNeg
		if tok.Kind == lexer.Tilde {
			op = cabs.OpBitNot
		}
		inner, s, err := parseExpression(s.advance())
		if err != nil {
			return nil, s, err
		}
		return cabs.Unary{Op: op, Expr: inner}, s, nil

	case lexer.LParen:
		inner, s, err := parseExpression(s.advance())
		if err != nil {
			return nil, s, err
		}
		if _, s, err = s.expect(lexer.RParen); err != nil {
			return nil, s, err
		}
		return inner, s, nil

	default:
		return nil, s, s.fail(expressionStart...)
	}
}
