package driver

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/raymyers/tacky-cc/pkg/asm"
	"github.com/raymyers/tacky-cc/pkg/casebook"
	"github.com/raymyers/tacky-cc/pkg/lexer"
	"github.com/raymyers/tacky-cc/pkg/parser"
)

var stopFor = map[casebook.Kind]Stage{
	casebook.KindTokens:  StageLex,
	casebook.KindAST:     StageParse,
	casebook.KindTacky:   StageTacky,
	casebook.KindCodegen: StageCodegen,
	casebook.KindLegal:   StageLegalize,
	casebook.KindAsm:     StageNone,
	casebook.KindError:   StageNone,
}

func TestScenarios(t *testing.T) {
	data, err := os.ReadFile("../../testdata/scenarios.md")
	if err != nil {
		t.Fatalf("failed to read scenarios.md: %v", err)
	}
	cases, err := casebook.Extract(data)
	if err != nil {
		t.Fatalf("failed to extract scenarios: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("scenarios.md has no tests")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			for _, a := range tc.Assertions {
				var out bytes.Buffer
				opts := Options{StopAfter: stopFor[a.Kind], Target: asm.TargetLinux, Verify: true}
				err := Compile(tc.Input, &out, opts)

				var got string
				if a.Kind == casebook.KindError {
					if err == nil {
						t.Fatalf("line %d: expected an error, got output:\n%s", a.Line, out.String())
					}
					got = Diagnostic(err)
				} else {
					if err != nil {
						t.Fatalf("line %d: %s: %v", a.Line, a.Kind, err)
					}
					got = out.String()
				}

				if casebook.NormalizeSpace(got) != casebook.NormalizeSpace(a.Content) {
					t.Errorf("line %d: %s mismatch\ngot:\n%s\nwant:\n%s", a.Line, a.Kind, got, a.Content)
				}
			}
		})
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	src := "int main(void) { return ~-~-7; }"

	var first, second bytes.Buffer
	be.Err(t, Compile(src, &first, Options{Target: asm.TargetLinux}), nil)
	be.Err(t, Compile(src, &second, Options{Target: asm.TargetLinux}), nil)
	be.Equal(t, first.String(), second.String())

	// temporaries restart at tmp.1 on every compilation
	var ir bytes.Buffer
	be.Err(t, Compile(src, &ir, Options{StopAfter: StageTacky}), nil)
	be.True(t, strings.Contains(ir.String(), "tmp.1 = Negate 7"))
	be.True(t, !strings.Contains(ir.String(), "tmp.5"))
}

func TestTrace(t *testing.T) {
	var out, trace bytes.Buffer
	err := Compile("int main(void){return 0;}", &out, Options{Target: asm.TargetLinux, Trace: &trace})
	be.Err(t, err, nil)

	want := "tacky-cc: stage lex\n" +
		"tacky-cc: stage parse\n" +
		"tacky-cc: stage tacky\n" +
		"tacky-cc: stage codegen\n" +
		"tacky-cc: stage stacking\n" +
		"tacky-cc: stage legalize\n" +
		"tacky-cc: stage emit\n" +
		"tacky-cc: stage done\n"
	be.Equal(t, trace.String(), want)
}

func TestTraceStopsAtFailingStage(t *testing.T) {
	var out, trace bytes.Buffer
	err := Compile("int main(void){return;}", &out, Options{Trace: &trace})
	be.True(t, err != nil)
	be.Equal(t, trace.String(), "tacky-cc: stage lex\ntacky-cc: stage parse\n")
	be.Equal(t, out.Len(), 0)
}

func TestStopAfterStacking(t *testing.T) {
	var out bytes.Buffer
	err := Compile("int main(void){return -1;}", &out, Options{StopAfter: StageStacking})
	be.Err(t, err, nil)

	want := "main:\n" +
		"  Mov(Imm(1), Stack(-4))\n" +
		"  Unary(Neg, Stack(-4))\n" +
		"  Mov(Stack(-4), Reg(AX))\n" +
		"  Ret\n"
	be.Equal(t, out.String(), want)
}

func TestStageErrors(t *testing.T) {
	var out bytes.Buffer

	err := Compile("int main(void){return 1x;}", &out, Options{})
	var stageErr *StageError
	be.True(t, errors.As(err, &stageErr))
	be.Equal(t, stageErr.Stage, StageLex)
	var lexErr *lexer.Error
	be.True(t, errors.As(err, &lexErr))

	err = Compile("int main(void){return 1}", &out, Options{})
	be.True(t, errors.As(err, &stageErr))
	be.Equal(t, stageErr.Stage, StageParse)
	var parseErr *parser.Error
	be.True(t, errors.As(err, &parseErr))
	be.Equal(t, Diagnostic(err), "Parser error: "+parseErr.Error())
}

func TestInvalidStopAfter(t *testing.T) {
	var out bytes.Buffer
	for _, s := range []Stage{StageEmit, StageDone, Stage(42)} {
		err := Compile("int main(void){return 0;}", &out, Options{StopAfter: s})
		be.True(t, err != nil)
	}
	be.Equal(t, out.Len(), 0)
}

func TestDiagnosticPassesOtherErrors(t *testing.T) {
	be.Equal(t, Diagnostic(errors.New("boom")), "boom")
}

func TestParseStage(t *testing.T) {
	for i, name := range stageNames {
		got, err := ParseStage(name)
		be.Err(t, err, nil)
		be.Equal(t, got, Stage(i))
		be.Equal(t, got.String(), name)
	}
	_, err := ParseStage("link")
	be.True(t, err != nil)
	be.Equal(t, Stage(42).String(), "stage(42)")
}
