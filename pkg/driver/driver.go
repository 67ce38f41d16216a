// Package driver runs the compilation pipeline from source text to assembly.
//
// Stages run strictly in order, each on the complete output of the one
// before. Only lexing and parsing can fail; every later stage is total.
// All mutable state (temporary numbering, stack slots) is created inside a
// single Compile call and discarded with it.
package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/raymyers/tacky-cc/pkg/asm"
	"github.com/raymyers/tacky-cc/pkg/asmgen"
	"github.com/raymyers/tacky-cc/pkg/cabs"
	"github.com/raymyers/tacky-cc/pkg/legalize"
	"github.com/raymyers/tacky-cc/pkg/lexer"
	"github.com/raymyers/tacky-cc/pkg/parser"
	"github.com/raymyers/tacky-cc/pkg/stacking"
	"github.com/raymyers/tacky-cc/pkg/tacky"
	"github.com/raymyers/tacky-cc/pkg/tackygen"
)

// Options configures one compilation
type Options struct {
	// StopAfter dumps the output of the named stage to out and stops.
	// StageNone runs the whole pipeline and emits assembly.
	StopAfter Stage
	Target    asm.Target
	// Verify checks the emission invariants before printing
	Verify bool
	// Trace, when set, receives one line per stage entered
	Trace io.Writer
}

// StageError is a user-facing failure in the lexer or parser
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Compile compiles source and writes the result to out
func Compile(source string, out io.Writer, opts Options) error {
	if opts.StopAfter != StageNone && !opts.StopAfter.canStopAfter() {
		return fmt.Errorf("cannot stop after stage %s", opts.StopAfter)
	}
	c := &compilation{opts: opts, out: out}
	return c.run(source)
}

// compilation carries one run of the pipeline
type compilation struct {
	opts Options
	out  io.Writer
}

func (c *compilation) enter(s Stage) {
	if c.opts.Trace != nil {
		fmt.Fprintf(c.opts.Trace, "tacky-cc: stage %s\n", s)
	}
}

func (c *compilation) stopAfter(s Stage) bool {
	return c.opts.StopAfter == s
}

func (c *compilation) run(source string) error {
	c.enter(StageLex)
	tokens, err := lexer.Lex(source)
	if err != nil {
		return &StageError{Stage: StageLex, Err: err}
	}
	if c.stopAfter(StageLex) {
		lexer.PrintTokens(c.out, tokens)
		return nil
	}

	c.enter(StageParse)
	program, err := parser.ParseProgram(tokens)
	if err != nil {
		return &StageError{Stage: StageParse, Err: err}
	}
	if c.stopAfter(StageParse) {
		cabs.NewPrinter(c.out).PrintProgram(program)
		return nil
	}

	c.enter(StageTacky)
	ir := tackygen.TransformProgram(program)
	if c.stopAfter(StageTacky) {
		tacky.NewPrinter(c.out).PrintProgram(ir)
		return nil
	}

	c.enter(StageCodegen)
	selected := asmgen.TransformProgram(ir)
	if c.stopAfter(StageCodegen) {
		asm.DumpProgram(c.out, selected)
		return nil
	}

	c.enter(StageStacking)
	assigned, frameSize := stacking.TransformProgram(selected)
	if c.stopAfter(StageStacking) {
		asm.DumpProgram(c.out, assigned)
		return nil
	}

	c.enter(StageLegalize)
	legal := legalize.TransformProgram(assigned, frameSize)
	if c.stopAfter(StageLegalize) {
		asm.DumpProgram(c.out, legal)
		return nil
	}
	if c.opts.Verify {
		if err := legalize.Check(legal.Function); err != nil {
			return fmt.Errorf("internal error after legalize: %w", err)
		}
	}

	c.enter(StageEmit)
	if err := asm.NewPrinter(c.out, c.opts.Target).PrintProgram(legal); err != nil {
		return err
	}
	c.enter(StageDone)
	return nil
}

// Diagnostic renders err the way the command line reports it
func Diagnostic(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return "Lexer error: " + lexErr.Error()
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return "Parser error: " + parseErr.Error()
	}
	return err.Error()
}
