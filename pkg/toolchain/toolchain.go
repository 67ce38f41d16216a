// Package toolchain drives the host C compiler for assembling and linking,
// and derives the file names of each compilation product.
package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoCompiler is returned when no host compiler is on PATH
var ErrNoCompiler = errors.New("no C compiler found (tried: cc, gcc, clang)")

var candidates = []string{"cc", "gcc", "clang"}

// Paths names the files produced while compiling one source file.
// All of them sit next to the input.
type Paths struct {
	Preprocessed string // file.i
	Assembly     string // file.s
	Executable   string // file
}

// OutputPaths derives the product paths for input by replacing its
// extension. A file without an extension gets an "a.out"-style executable
// name so it is not overwritten.
func OutputPaths(input string) Paths {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	exe := base
	if exe == input {
		exe = input + ".out"
	}
	return Paths{
		Preprocessed: base + ".i",
		Assembly:     base + ".s",
		Executable:   exe,
	}
}

// FindCompiler returns the first host compiler found on PATH
func FindCompiler() (string, error) {
	for _, cmd := range candidates {
		if path, err := exec.LookPath(cmd); err == nil {
			return path, nil
		}
	}
	return "", ErrNoCompiler
}

// Link assembles asmFile and links it into exeFile
func Link(asmFile, exeFile string) error {
	cc, err := FindCompiler()
	if err != nil {
		return err
	}

	cmd := exec.Command(cc, asmFile, "-o", exeFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("linking %s failed: %w\n%s", asmFile, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
