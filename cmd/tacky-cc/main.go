package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raymyers/tacky-cc/pkg/asm"
	"github.com/raymyers/tacky-cc/pkg/driver"
	"github.com/raymyers/tacky-cc/pkg/preproc"
	"github.com/raymyers/tacky-cc/pkg/toolchain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

// Stage-stop flags
var (
	lexOnly       bool
	parseOnly     bool
	tackyOnly     bool
	codegenOnly   bool
	stopAfterName string
)

// Output and pipeline options
var (
	asmOnly    bool // -S
	outputPath string
	targetName string
	verify     bool
	verbose    bool
)

// Preprocessor options
var (
	includePaths   []string
	defineFlags    []string
	undefineFlags  []string
	preprocessOnly bool // -E flag
)

// ErrConflictingStages is returned when more than one stage-stop flag is given
var ErrConflictingStages = errors.New("only one stage-stop flag may be given")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// longFlagNames lists long flags that also accept a single dash (-lex)
var longFlagNames = []string{"lex", "parse", "tacky", "codegen", "stop-after", "target", "verify", "verbose"}

// normalizeFlags converts single-dash long flags like -lex to --lex
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, flagName := range longFlagNames {
			if arg == "-"+flagName || strings.HasPrefix(arg, "-"+flagName+"=") {
				result[i] = "-" + arg
				break
			}
		}
	}
	return result
}

// underscoreToDash lets --stop_after and --stop-after name the same flag
func underscoreToDash(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tacky-cc [file]",
		Short: "tacky-cc compiles a tiny subset of C to x86-64 assembly",
		Long: `tacky-cc compiles a single C function returning an integer
expression built from constants, negation and bitwise complement.
Source is lowered through the Tacky IR to x86-64 assembly, then
assembled and linked with the host C compiler.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			err := compileFile(args[0], out, errOut)
			if err != nil {
				report(errOut, err)
			}
			return err
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(errOut, "tacky-cc: %v\n", err)
		return err
	})

	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(underscoreToDash)

	// Stage-stop flags
	flags.BoolVar(&lexOnly, "lex", false, "Stop after lexing and print the tokens")
	flags.BoolVar(&parseOnly, "parse", false, "Stop after parsing and print the AST")
	flags.BoolVar(&tackyOnly, "tacky", false, "Stop after Tacky generation and print the IR")
	flags.BoolVar(&codegenOnly, "codegen", false, "Stop after instruction selection and print the assembly tree")
	flags.StringVar(&stopAfterName, "stop-after", "", "Stop after the named stage (lex, parse, tacky, codegen, stacking, legalize)")

	// Output flags
	flags.BoolVarP(&asmOnly, "assembly", "S", false, "Write assembly to a .s file and do not link")
	flags.StringVarP(&outputPath, "output", "o", "", "Write output to this path")
	flags.StringVar(&targetName, "target", "", "Emission target: linux or darwin (default: host)")
	flags.BoolVar(&verify, "verify", false, "Check assembly invariants before emitting")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Trace compilation stages on stderr")

	// Preprocessor flags
	flags.StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to include search path")
	flags.StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	flags.StringArrayVarP(&undefineFlags, "undefine", "U", nil, "Undefine macro")
	flags.BoolVarP(&preprocessOnly, "preprocess", "E", false, "Preprocess only, output to stdout")

	return rootCmd
}

// report writes err to errOut. Lexer and parser errors are printed as
// diagnostics; anything else is prefixed with the program name.
func report(errOut io.Writer, err error) {
	var stageErr *driver.StageError
	if errors.As(err, &stageErr) {
		fmt.Fprintln(errOut, driver.Diagnostic(err))
		return
	}
	fmt.Fprintf(errOut, "tacky-cc: error: %v\n", err)
}

// selectedStage resolves the stage-stop flags to a single stage
func selectedStage() (driver.Stage, error) {
	stage := driver.StageNone
	set := func(s driver.Stage) error {
		if stage != driver.StageNone && stage != s {
			return ErrConflictingStages
		}
		stage = s
		return nil
	}

	for _, f := range []struct {
		on    bool
		stage driver.Stage
	}{
		{lexOnly, driver.StageLex},
		{parseOnly, driver.StageParse},
		{tackyOnly, driver.StageTacky},
		{codegenOnly, driver.StageCodegen},
	} {
		if f.on {
			if err := set(f.stage); err != nil {
				return driver.StageNone, err
			}
		}
	}

	if stopAfterName != "" {
		s, err := driver.ParseStage(stopAfterName)
		if err != nil {
			return driver.StageNone, err
		}
		if err := set(s); err != nil {
			return driver.StageNone, err
		}
	}
	return stage, nil
}

// buildPreprocessorOptions creates preproc.Options from CLI flags
func buildPreprocessorOptions() *preproc.Options {
	opts := &preproc.Options{
		IncludePaths: includePaths,
		Defines:      make(map[string]string),
		Undefines:    undefineFlags,
	}
	for _, d := range defineFlags {
		name, value := preproc.ParseDefine(d)
		opts.Defines[name] = value
	}
	return opts
}

func buildDriverOptions(stage driver.Stage, errOut io.Writer) (driver.Options, error) {
	target := asm.DefaultTarget()
	if targetName != "" {
		t, err := asm.ParseTarget(targetName)
		if err != nil {
			return driver.Options{}, err
		}
		target = t
	}
	opts := driver.Options{StopAfter: stage, Target: target, Verify: verify}
	if verbose {
		opts.Trace = errOut
	}
	return opts, nil
}

// readSource returns the text to compile. Files that need preprocessing
// go through the host preprocessor, and the result is also kept as a .i
// file next to the source.
func readSource(filename string) (string, error) {
	if !preproc.NeedsPreprocessing(filename) {
		content, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}

	content, err := preproc.Preprocess(filename, buildPreprocessorOptions())
	if err != nil {
		return "", err
	}
	iFile := toolchain.OutputPaths(filename).Preprocessed
	if err := os.WriteFile(iFile, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", iFile, err)
	}
	return content, nil
}

func compileFile(filename string, out, errOut io.Writer) error {
	if preprocessOnly {
		content, err := preproc.Preprocess(filename, buildPreprocessorOptions())
		if err != nil {
			return err
		}
		return writeOutput(outputPath, out, []byte(content))
	}

	stage, err := selectedStage()
	if err != nil {
		return err
	}
	opts, err := buildDriverOptions(stage, errOut)
	if err != nil {
		return err
	}

	source, err := readSource(filename)
	if err != nil {
		return err
	}

	// compile into memory so a failed run leaves no partial output file
	var buf bytes.Buffer
	if err := driver.Compile(source, &buf, opts); err != nil {
		return err
	}

	if stage != driver.StageNone {
		return writeOutput(outputPath, out, buf.Bytes())
	}

	paths := toolchain.OutputPaths(filename)
	asmFile := paths.Assembly
	if asmOnly && outputPath != "" {
		asmFile = outputPath
	}
	if err := os.WriteFile(asmFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", asmFile, err)
	}
	if asmOnly {
		return nil
	}

	exeFile := paths.Executable
	if outputPath != "" {
		exeFile = outputPath
	}
	return toolchain.Link(asmFile, exeFile)
}

// writeOutput writes data to path, or to out when path is empty
func writeOutput(path string, out io.Writer, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
