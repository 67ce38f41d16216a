// Package preproc runs the host C preprocessor over a source file.
// The compiler itself only accepts preprocessed input, so directives,
// comments and macros are all resolved here by cc -E.
package preproc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoPreprocessor is returned when none of the candidate commands is on PATH
var ErrNoPreprocessor = errors.New("no C preprocessor found (tried: cc, gcc, clang)")

// Options configures the preprocessing step
type Options struct {
	IncludePaths []string          // -I directories
	Defines      map[string]string // -D macros (name -> value, empty string for simple define)
	Undefines    []string          // -U macros
}

// candidates are tried in order on PATH
var candidates = []string{"cc", "gcc", "clang"}

// Preprocess runs the system preprocessor on filename and returns its
// output. Line markers are suppressed so token positions refer to the
// preprocessed text.
func Preprocess(filename string, opts *Options) (string, error) {
	cppCmd := findPreprocessor()
	if cppCmd == "" {
		return "", ErrNoPreprocessor
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(cppCmd, append(Args(opts), abs)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// relative includes resolve against the source file
	cmd.Dir = filepath.Dir(abs)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocessing %s failed: %w\n%s", filename, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Args builds the preprocessor arguments for opts, without the input file.
// Defines are emitted in name order so the command line is stable.
func Args(opts *Options) []string {
	args := []string{"-E", "-P"}
	if opts == nil {
		return args
	}

	for _, path := range opts.IncludePaths {
		args = append(args, "-I"+path)
	}

	names := make([]string, 0, len(opts.Defines))
	for name := range opts.Defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if value := opts.Defines[name]; value != "" {
			args = append(args, "-D"+name+"="+value)
		} else {
			args = append(args, "-D"+name)
		}
	}

	for _, name := range opts.Undefines {
		args = append(args, "-U"+name)
	}
	return args
}

// ParseDefine splits a -D argument of the form NAME or NAME=VALUE
func ParseDefine(def string) (name, value string) {
	name, value, _ = strings.Cut(def, "=")
	return name, value
}

// NeedsPreprocessing returns true if the file might need preprocessing.
// Files ending in .i or .p are considered already preprocessed.
func NeedsPreprocessing(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != ".i" && ext != ".p"
}

func findPreprocessor() string {
	for _, cmd := range candidates {
		if path, err := exec.LookPath(cmd); err == nil {
			return path
		}
	}
	return ""
}
