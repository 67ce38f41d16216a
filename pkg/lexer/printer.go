package lexer

import (
	"fmt"
	"io"
)

// PrintTokens writes one token per line as "line:start-end<TAB>token"
func PrintTokens(w io.Writer, tokens []Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d-%d\t%s\n", tok.Line, tok.ColumnStart, tok.ColumnEnd, tok)
	}
}
