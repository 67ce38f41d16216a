// Package casebook extracts compiler test cases from Markdown documents.
//
// A case starts at a heading of the form "Test: <name>". It holds exactly
// one ```c input fence followed by one or more assertion fences whose info
// string names what they check (see Kind). Fenced blocks without an info
// string are treated as prose.
package casebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind names the pipeline output an assertion is compared against
type Kind string

const (
	KindTokens  Kind = "tokens"   // token dump after lexing
	KindAST     Kind = "ast"      // C printout of the parsed AST
	KindTacky   Kind = "tacky"    // Tacky IR printout
	KindCodegen Kind = "codegen"  // pseudo-assembly after instruction selection
	KindLegal   Kind = "legalize" // assembly after stack assignment and fixups
	KindAsm     Kind = "asm"      // emitted assembly text
	KindError   Kind = "error"    // diagnostic of a failed compilation
)

const inputLanguage = "c"

var assertionKinds = map[Kind]bool{
	KindTokens:  true,
	KindAST:     true,
	KindTacky:   true,
	KindCodegen: true,
	KindLegal:   true,
	KindAsm:     true,
	KindError:   true,
}

// Assertion is one expected output
type Assertion struct {
	Kind    Kind
	Content string
	Line    int
}

// Case is a named input with its assertions
type Case struct {
	Name       string
	Input      string
	Line       int
	Assertions []Assertion
}

// Extract parses a Markdown document and returns its test cases in order
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []Case
	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, markdown)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimSpace(name), Line: lineOf(n, markdown)}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdown))
			if language == "" {
				return ast.WalkContinue, nil
			}
			line := lineOf(n, markdown)
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, language)
			}
			content := strings.TrimRight(blockContent(n, markdown), "\n")

			switch {
			case language == inputLanguage:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second input fence in test %q", line, current.Name)
				}
				current.Input = content
			case assertionKinds[Kind(language)]:
				current.Assertions = append(current.Assertions, Assertion{Kind: Kind(language), Content: content, Line: line})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test %q has no input fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", c.Name)
	}
	return nil
}

// nodeText concatenates the text segments below node
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based source line where node's content starts
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}

// NormalizeSpace collapses runs of blanks inside each line and drops blank
// lines, so expectations can be written without caring about tabs.
func NormalizeSpace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n")
}
