// Package lexer turns preprocessed C source into positioned tokens.
//
// Scanning uses an ordered rule table with maximal munch: at each position
// every rule is tried, the longest match wins, and on a length tie the rule
// registered first wins.
package lexer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Error reports the first character the lexer could not turn into a token
type Error struct {
	Char   rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected char = '%c' at line %d, column %d", e.Char, e.Line, e.Column)
}

// errBadWord is returned by the word rule for digit-leading words and
// out-of-range integer literals
var errBadWord = errors.New("malformed word")

// rule is one entry of the scanning table. match returns the length of the
// longest prefix of s it accepts, or 0.
type rule struct {
	name     string
	match    func(s string) int
	classify func(text string) (Kind, int64, error)
}

var rules = []rule{
	{name: "word", match: matchWord, classify: classifyWord},
	literalRule("--", Decrement),
	literalRule("-", Minus),
	literalRule("~", Tilde),
	literalRule("(", LParen),
	literalRule(")", RParen),
	literalRule("{", LBrace),
	literalRule("}", RBrace),
	literalRule(";", Semicolon),
}

// Rules returns the rule names in registration (tie-break) order
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

func literalRule(lit string, kind Kind) rule {
	return rule{
		name: lit,
		match: func(s string) int {
			if len(s) >= len(lit) && s[:len(lit)] == lit {
				return len(lit)
			}
			return 0
		},
		classify: func(string) (Kind, int64, error) {
			return kind, 0, nil
		},
	}
}

func matchWord(s string) int {
	n := 0
	for n < len(s) && isWordChar(s[n]) {
		n++
	}
	return n
}

func classifyWord(text string) (Kind, int64, error) {
	if kind := LookupIdent(text); kind != Identifier {
		return kind, 0, nil
	}
	if !isDigit(text[0]) {
		return Identifier, 0, nil
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return EOF, 0, errBadWord
		}
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil || value > math.MaxInt32 {
		return EOF, 0, errBadWord
	}
	return IntConstant, value, nil
}

// Lexer holds the scanning position over one input
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Lex tokenizes the whole input. On success the last token is EOF.
func Lex(input string) ([]Token, error) {
	return New(input).All()
}

// All scans the remaining input, stopping at the first error
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Line: l.line, ColumnStart: l.column, ColumnEnd: l.column}, nil
	}

	rest := l.input[l.pos:]
	best := -1
	bestLen := 0
	for i, r := range rules {
		// strictly longer, so the earlier rule keeps a tie
		if n := r.match(rest); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return Token{}, l.errorHere()
	}

	text := rest[:bestLen]
	kind, value, err := rules[best].classify(text)
	if err != nil {
		return Token{}, l.errorHere()
	}

	tok := Token{
		Kind:        kind,
		Literal:     text,
		Value:       value,
		Line:        l.line,
		ColumnStart: l.column,
		ColumnEnd:   l.column + bestLen,
	}
	l.pos += bestLen
	l.column += bestLen
	return tok, nil
}

func (l *Lexer) errorHere() *Error {
	ch, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return &Error{Char: ch, Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\n':
			l.line++
			l.column = 1
		case ' ', '\t', '\r', '\v', '\f':
			l.column++
		default:
			return
		}
		l.pos++
	}
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
